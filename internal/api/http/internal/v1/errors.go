package v1

type ErrorStruct struct {
	ErrorMessage string `json:"error"`
} // @name ErrorStruct
