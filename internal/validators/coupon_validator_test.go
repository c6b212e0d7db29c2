package validators

import (
	"testing"
	"time"
)

func validCouponCreate() *CouponCreateRequest {
	return &CouponCreateRequest{
		Code:          "SAVE10",
		Name:          "Ten Percent Off",
		DiscountType:  "PERCENTAGE",
		DiscountValue: 10,
		StartDate:     time.Now(),
		EndDate:       time.Now().Add(24 * time.Hour),
	}
}

func TestValidateCouponCreate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *CouponCreateRequest)
		wantField string
	}{
		{
			name:   "valid",
			mutate: func(r *CouponCreateRequest) {},
		},
		{
			name:   "lowercase code accepted",
			mutate: func(r *CouponCreateRequest) { r.Code = "save10" },
		},
		{
			name:      "code with spaces rejected",
			mutate:    func(r *CouponCreateRequest) { r.Code = "SAVE 10" },
			wantField: "Code",
		},
		{
			name:      "code too short",
			mutate:    func(r *CouponCreateRequest) { r.Code = "AB" },
			wantField: "Code",
		},
		{
			name:      "percentage above hundred",
			mutate:    func(r *CouponCreateRequest) { r.DiscountValue = 150 },
			wantField: "discount_value",
		},
		{
			name: "end before start",
			mutate: func(r *CouponCreateRequest) {
				r.StartDate = time.Now().Add(48 * time.Hour)
				r.EndDate = time.Now().Add(24 * time.Hour)
			},
			wantField: "end_date",
		},
		{
			name:      "bad discount type",
			mutate:    func(r *CouponCreateRequest) { r.DiscountType = "BOGOF" },
			wantField: "DiscountType",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCouponCreate()
			tt.mutate(req)

			errs := ValidateCouponCreate(req)
			if tt.wantField == "" {
				if len(errs) != 0 {
					t.Errorf("unexpected errors: %v", errs)
				}
				return
			}

			found := false
			for _, e := range errs {
				if e.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on field %q, got %v", tt.wantField, errs)
			}
		})
	}
}

func TestBatchCreateFeeBounds(t *testing.T) {
	base := func() *BatchCreateRequest {
		return &BatchCreateRequest{
			Name:            "Evening Physics",
			Subjects:        []string{"physics"},
			Boards:          []string{"CBSE"},
			Classes:         []string{"12"},
			Days:            []string{"monday"},
			Time:            []string{"18:00"},
			Fees:            1500,
			MaximumStudents: 2,
			BatchStartDate:  time.Now().Add(7 * 24 * time.Hour),
			LastEnrolDate:   time.Now().Add(5 * 24 * time.Hour),
		}
	}

	for _, fee := range []float64{100, 25000} {
		req := base()
		req.Fees = fee
		errs := ValidateBatchCreate(req)
		for _, e := range errs {
			if e.Field == "Fees" {
				t.Errorf("fee %v should be accepted, got %v", fee, e)
			}
		}
	}

	for _, fee := range []float64{99, 25001, 0} {
		req := base()
		req.Fees = fee
		errs := ValidateBatchCreate(req)
		found := false
		for _, e := range errs {
			if e.Field == "Fees" {
				found = true
			}
		}
		if !found {
			t.Errorf("fee %v should be rejected", fee)
		}
	}
}
