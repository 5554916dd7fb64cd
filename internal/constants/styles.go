package constants

// Known cell style tags. Other tags are carried through untouched.
const (
	StyleLab      = "lab"
	StyleElective = "elective"
)
