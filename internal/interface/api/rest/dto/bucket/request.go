package bucket

type Request struct {
	Partition     string `json:"partition"`
	PartitionSize *int64 `json:"partition_size,omitempty"`
}
