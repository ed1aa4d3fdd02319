package dto

type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Slug        string `json:"slug" validate:"omitempty,max=100"`
}

type BrandRequest struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug" validate:"omitempty,max=100"`
}

type DriverRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	PIN     string `json:"pin" validate:"required,numeric,min=4,max=8"`
	Vehicle string `json:"vehicle" validate:"required"`
}
