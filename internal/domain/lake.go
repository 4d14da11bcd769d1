package domain

// Lake is a bookable water with a fixed daily capacity
type Lake struct {
	ID          string
	Name        string
	Capacity    int
	Description string
}
