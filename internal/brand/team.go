package brand

// TeamMember is one internal reviewer who receives newsletter previews.
type TeamMember struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TeamMembers is the preview distribution list.
var TeamMembers = []TeamMember{
	{Name: "John Ortbal", Email: "john.ortbal@brite.co"},
	{Name: "Stef Lynn", Email: "stef.lynn@brite.co"},
	{Name: "Selena Fragassi", Email: "selena.fragassi@brite.co"},
}
