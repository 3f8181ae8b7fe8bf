package user

type Request struct {
	Role       string  `json:"role"`
	RootFolder *string `json:"root_folder,omitempty"`
	Password   *string `json:"password,omitempty"`
}
