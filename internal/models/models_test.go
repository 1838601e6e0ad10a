package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestSalonApply(t *testing.T) {
	base := func() *Salon {
		return &Salon{Name: "Lotus Spa", City: "Taipei", Email: "hello@lotus.tw", PhoneNumber: "+886912345678"}
	}

	t.Run("NoFields", func(t *testing.T) {
		s := base()
		assert.False(t, s.Apply(UpdateSalonRequest{}))
	})

	t.Run("SameValues", func(t *testing.T) {
		s := base()
		changed := s.Apply(UpdateSalonRequest{Name: strPtr("Lotus Spa"), City: strPtr(" Taipei ")})
		assert.False(t, changed)
	})

	t.Run("OneFieldDiffers", func(t *testing.T) {
		s := base()
		changed := s.Apply(UpdateSalonRequest{Name: strPtr("Lotus Spa"), City: strPtr("Tainan")})
		assert.True(t, changed)
		assert.Equal(t, "Tainan", s.City)
		assert.Equal(t, "Lotus Spa", s.Name)
	})

	t.Run("LaterFieldsStillApplied", func(t *testing.T) {
		s := base()
		changed := s.Apply(UpdateSalonRequest{Name: strPtr("Lotus"), PostalCode: strPtr("100")})
		assert.True(t, changed)
		assert.Equal(t, "Lotus", s.Name)
		assert.Equal(t, "100", s.PostalCode)
	})
}

func TestUserProfileApply(t *testing.T) {
	bday := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)

	t.Run("SameBirthday", func(t *testing.T) {
		p := &UserProfile{Birthday: &bday}
		assert.False(t, p.Apply(UpdateProfileRequest{Birthday: strPtr("1990-05-17")}))
	})

	t.Run("NewBirthday", func(t *testing.T) {
		p := &UserProfile{Birthday: &bday}
		require.True(t, p.Apply(UpdateProfileRequest{Birthday: strPtr("1991-01-02")}))
		assert.Equal(t, 1991, p.Birthday.Year())
	})

	t.Run("ClearBirthday", func(t *testing.T) {
		p := &UserProfile{Birthday: &bday}
		assert.True(t, p.Apply(UpdateProfileRequest{Birthday: strPtr("")}))
		assert.Nil(t, p.Birthday)
	})

	t.Run("ClearAlreadyEmpty", func(t *testing.T) {
		p := &UserProfile{}
		assert.False(t, p.Apply(UpdateProfileRequest{Birthday: strPtr("")}))
	})
}

func TestUserApplyAccount(t *testing.T) {
	phone := "+886912345678"
	u := &User{Username: "amy", Email: "amy@example.com", PhoneNumber: &phone}

	assert.False(t, u.ApplyAccount(UpdateProfileRequest{PhoneNumber: strPtr("+886912345678")}))
	assert.True(t, u.ApplyAccount(UpdateProfileRequest{PhoneNumber: strPtr("")}))
	assert.Nil(t, u.PhoneNumber)
	assert.True(t, u.ApplyAccount(UpdateProfileRequest{Email: strPtr("amy@lotus.tw")}))
	assert.Equal(t, "amy@lotus.tw", u.Email)
}

func TestServiceApply(t *testing.T) {
	s := &Service{Name: "Massage", DurationMinutes: 60, PriceCents: 150000}
	sixty := 60
	price := int64(150000)
	assert.False(t, s.Apply(UpdateServiceRequest{DurationMinutes: &sixty, PriceCents: &price}))

	ninety := 90
	assert.True(t, s.Apply(UpdateServiceRequest{DurationMinutes: &ninety}))
	assert.Equal(t, 90*time.Minute, s.Duration())
}

func TestEmployeeApply(t *testing.T) {
	hired := time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)
	e := &Employee{Email: "kim@lotus.tw", JobTitle: "Stylist", HiredAt: &hired}

	assert.False(t, e.Apply(UpdateEmployeeRequest{HiredAt: strPtr("2022-03-01"), JobTitle: strPtr("Stylist")}))
	assert.True(t, e.Apply(UpdateEmployeeRequest{JobTitle: strPtr("Senior Stylist")}))

	p := &EmployeeProfile{FirstName: "Kim"}
	assert.False(t, p.Apply(UpdateEmployeeProfileRequest{FirstName: strPtr("Kim")}))
	assert.True(t, p.Apply(UpdateEmployeeProfileRequest{Bio: strPtr("Colour specialist")}))
}

func TestAppointmentCanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{AppointmentScheduled, AppointmentCompleted, true},
		{AppointmentScheduled, AppointmentCancelled, true},
		{AppointmentScheduled, AppointmentNoShow, true},
		{AppointmentScheduled, AppointmentScheduled, false},
		{AppointmentCompleted, AppointmentCancelled, false},
		{AppointmentCancelled, AppointmentCompleted, false},
		{AppointmentNoShow, AppointmentCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"_to_"+tt.to, func(t *testing.T) {
			a := &Appointment{Status: tt.from}
			assert.Equal(t, tt.want, a.CanTransitionTo(tt.to))
		})
	}
}

func TestPagination(t *testing.T) {
	page, limit, offset := NormalizePage(0, 500)
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageLimit, limit)
	assert.Equal(t, 0, offset)

	page, limit, offset = NormalizePage(3, 20)
	assert.Equal(t, 3, page)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 40, offset)

	meta := NewPaginationMetadata(3, 20, 41)
	assert.Equal(t, 3, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	empty := NewPaginationMetadata(1, 10, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
}

func TestActorRoles(t *testing.T) {
	a := Actor{UserID: "u1", Roles: []string{RoleCustomer, RoleManager}}
	assert.True(t, a.HasRole(RoleManager))
	assert.False(t, a.IsAdmin())
	assert.True(t, Actor{Roles: []string{RoleAdmin}}.IsAdmin())
	assert.True(t, IsValidRole("manager"))
	assert.False(t, IsValidRole("owner"))
}
