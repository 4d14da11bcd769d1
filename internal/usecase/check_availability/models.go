package check_availability

import "time"

// Request занятость одного озера на одну дату
type Request struct {
	LakeID string
	Date   time.Time
}

// RangeRequest занятость одного озера по дням в диапазоне [From, To] включительно
type RangeRequest struct {
	LakeID string
	From   time.Time
	To     time.Time
}

// Response занятость озера на дату
type Response struct {
	LakeID    string
	LakeName  string
	Date      time.Time // полночь UTC
	Capacity  int
	Booked    int
	Available int
}
