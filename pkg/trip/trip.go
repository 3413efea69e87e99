package trip

import "errors"

var (
	ErrTripNotFound      = errors.New("trip not found")
	ErrItemNotFound      = errors.New("itinerary item not found")
	ErrOrderIndexTaken   = errors.New("order index already used for this day")
	ErrInvalidDay        = errors.New("day must be >= 1")
	ErrInvalidOrderIndex = errors.New("order_index must be >= 1")
	ErrInvalidStatus     = errors.New("status must be upcoming, ongoing, completed or cancelled")
	ErrInvalidDate       = errors.New("dates must be YYYY-MM-DD")
	ErrInvalidTime       = errors.New("times must be HH:MM")
	ErrEndBeforeStart    = errors.New("end date is before start date")
)
