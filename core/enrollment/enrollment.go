package enrollment

import "time"

// StatusPaid is the only status this core writes: payment either
// already happened upstream or is simulated.
const StatusPaid = "PAID"

// Mode selects between a paying enrollment and an administrative gift.
type Mode int

const (
	Purchase Mode = iota
	Gift
)

type Enrollment struct {
	ID        int       `json:"id" db:"purchase_id"`
	UserID    int       `json:"userId" db:"user_id"`
	CourseID  int       `json:"courseId" db:"course_id"`
	PricePaid float64   `json:"pricePaid" db:"price_paid"`
	Status    string    `json:"status" db:"status"`
	PaymentID *string   `json:"paymentId,omitempty" db:"payment_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type EnrollNew struct {
	UserID    int     `json:"userId" validate:"required,gte=1"`
	PricePaid float64 `json:"pricePaid" validate:"gte=0"`
}

type GiftNew struct {
	UserID int `json:"userId" validate:"required,gte=1"`
}

type PaymentNew struct {
	UserID   int `json:"userId" validate:"required,gte=1"`
	CourseID int `json:"courseId" validate:"required,gte=1"`
}
