package books

type ListBooksQuery struct {
	Limit     int     `query:"limit" json:"limit,omitempty" default:"24" validate:"min=1,max=100"`
	Offset    int     `query:"offset" json:"offset,omitempty" validate:"min=0"`
	Section   *string `query:"section" json:"section,omitempty" validate:"omitempty,max=100"`
	MediaType *string `query:"media_type" json:"media_type,omitempty" validate:"omitempty,max=50"`
	Status    *string `query:"status" json:"status,omitempty" validate:"omitempty,oneof=Active Inactive"`
}

type UpdateBookPayload struct {
	Title        *string `json:"title,omitempty" validate:"omitempty,max=300"`
	Author       *string `json:"author,omitempty" validate:"omitempty,max=200"`
	Genre        *string `json:"genre,omitempty" validate:"omitempty,max=100"`
	ReadingLevel *string `json:"reading_level,omitempty" validate:"omitempty,max=50"`
	Status       *string `json:"status,omitempty" validate:"omitempty,oneof=Active Inactive"`
}
