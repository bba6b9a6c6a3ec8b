package model

type Metadata struct {
	InputShape  []int64 `json:"input_shape"`
	OutputShape []int64 `json:"output_shape"`
	ImageSize   int     `json:"image_size"`
}

type PredictionItem struct {
	Label      string  `json:"label"`
	Confidence float32 `json:"confidence"`
}
