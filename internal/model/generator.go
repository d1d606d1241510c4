package model

// GenerateRequest represents a password generation request.
// Pointer bools distinguish a missing toggle (nil -> initial-load default) from an explicit false.
type GenerateRequest struct {
	Length    int   `json:"length"`
	Count     int   `json:"count"`
	Lowercase *bool `json:"lowercase"`
	Uppercase *bool `json:"uppercase"`
	Digits    *bool `json:"digits"`
	Symbols   *bool `json:"symbols"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Password     string   `json:"password"`
	Passwords    []string `json:"passwords"`
	Length       int      `json:"length"`
	AlphabetSize int      `json:"alphabet_size"`
}

// ClassResponse describes one character class.
type ClassResponse struct {
	Name     string `json:"name"`
	Alphabet string `json:"alphabet"`
	Default  bool   `json:"default"`
}
