package asset

// CreateRequest carries the asset options. For file uploads it is
// bound from multipart form fields next to the "file" part, for
// folders from the JSON body.
type CreateRequest struct {
	Public        bool     `json:"public" form:"public"`
	CustomPath    *string  `json:"custom_path,omitempty" form:"custom_path"`
	CreateParents bool     `json:"create_parents" form:"create_parents"`
	SharedWith    []string `json:"shared_with,omitempty" form:"shared_with"`
}

type CreateResponse struct {
	Path string `json:"path"`
}
