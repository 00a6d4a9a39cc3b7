package model

// Pagination represents common pagination parameters
type Pagination struct {
	Skip  int `json:"skip" form:"skip"`
	Limit int `json:"limit" form:"limit"`
}

// JSONMap represents a generic JSON object
type JSONMap map[string]interface{}
