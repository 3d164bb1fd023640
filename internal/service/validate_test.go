package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/communitas/admin-gateway/internal/domain"
	"github.com/communitas/admin-gateway/internal/service"
)

var validateNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

// validOneDayForm returns a form that passes create-mode validation.
func validOneDayForm() domain.EventForm {
	return domain.EventForm{
		Name:        "Go Meetup Surat",
		Description: "Monthly community meetup",
		Type:        domain.EventOneDay,
		AccessMode:  domain.AccessFree,
		Date:        "2026-04-01",
		StartTime:   "18:00",
		EndTime:     "20:00",
		Location:    "Adajan, Surat",
		ImageName:   "poster.png",
		ImageSize:   512 * 1024,
	}
}

func validTripForm() domain.EventForm {
	f := validOneDayForm()
	f.Type = domain.EventTrip
	f.Date = ""
	f.StartTime = ""
	f.EndTime = ""
	f.StartDate = "2026-05-10"
	f.EndDate = "2026-05-20"
	return f
}

// ---- common fields ---------------------------------------------------------

func TestValidate_ValidCreateForm(t *testing.T) {
	ok, errs := service.ValidateEventForm(validOneDayForm(), false, validateNow)

	assert.True(t, ok)
	assert.Empty(t, errs)
}

func TestValidate_NameAndDescriptionRequired(t *testing.T) {
	form := validOneDayForm()
	form.Name = "   "
	form.Description = ""

	ok, errs := service.ValidateEventForm(form, false, validateNow)

	assert.False(t, ok)
	assert.Equal(t, "Event name is required.", errs["eventName"])
	assert.Equal(t, "Description is required.", errs["description"])
}

func TestValidate_ImageRequiredAndCapped(t *testing.T) {
	form := validOneDayForm()
	form.ImageSize = 0
	_, errs := service.ValidateEventForm(form, false, validateNow)
	assert.Equal(t, "Event image is required.", errs["image"])

	form.ImageSize = domain.MaxImageBytes + 1
	_, errs = service.ValidateEventForm(form, false, validateNow)
	assert.Equal(t, "Image must be 2 MB or smaller.", errs["image"])

	form.ImageSize = domain.MaxImageBytes
	_, errs = service.ValidateEventForm(form, false, validateNow)
	assert.NotContains(t, errs, "image", "exactly 2 MB is allowed")
}

// ---- one-day / online ------------------------------------------------------

// A one-day event dated yesterday fails with the exact future-date message.
func TestValidate_OneDay_PastDate(t *testing.T) {
	form := validOneDayForm()
	form.Date = "2026-03-14" // yesterday relative to validateNow

	ok, errs := service.ValidateEventForm(form, false, validateNow)

	assert.False(t, ok)
	assert.Equal(t, "Event date must be in the future.", errs["date"])
}

func TestValidate_OneDay_DateMissingOrMalformed(t *testing.T) {
	form := validOneDayForm()
	form.Date = ""
	_, errs := service.ValidateEventForm(form, false, validateNow)
	assert.Equal(t, "Event date is required.", errs["date"])

	form.Date = "01/04/2026"
	_, errs = service.ValidateEventForm(form, false, validateNow)
	assert.Equal(t, "Invalid event date.", errs["date"])
}

func TestValidate_OneDay_TimesAndLocationRequired(t *testing.T) {
	form := validOneDayForm()
	form.StartTime = ""
	form.EndTime = " "
	form.Location = ""

	_, errs := service.ValidateEventForm(form, false, validateNow)

	assert.Equal(t, "Start time is required.", errs["startTime"])
	assert.Equal(t, "End time is required.", errs["endTime"])
	assert.Equal(t, "Location is required.", errs["location"])
}

func TestValidate_Online_RequiresLinkInsteadOfLocation(t *testing.T) {
	form := validOneDayForm()
	form.Type = domain.EventOnline
	form.Location = ""
	form.Link = "not a url"

	_, errs := service.ValidateEventForm(form, false, validateNow)

	assert.Equal(t, "A valid event link is required.", errs["link"])
	assert.NotContains(t, errs, "location")

	form.Link = "https://meet.example.com/go-meetup"
	ok, errs := service.ValidateEventForm(form, false, validateNow)
	assert.True(t, ok, "unexpected errors: %v", errs)
}

// ---- trips -----------------------------------------------------------------

func TestValidate_Trip_Valid(t *testing.T) {
	ok, errs := service.ValidateEventForm(validTripForm(), false, validateNow)

	assert.True(t, ok, "unexpected errors: %v", errs)
}

func TestValidate_Trip_EndNotAfterStart(t *testing.T) {
	form := validTripForm()
	form.EndDate = form.StartDate // equal — still invalid, must be strictly after

	ok, errs := service.ValidateEventForm(form, false, validateNow)

	assert.False(t, ok)
	assert.Equal(t, "End date must be after the start date.", errs["endDate"])
}

func TestValidate_Trip_StartMustBeFuture(t *testing.T) {
	form := validTripForm()
	form.StartDate = "2026-03-01"

	_, errs := service.ValidateEventForm(form, false, validateNow)

	assert.Equal(t, "Start date must be in the future.", errs["startDate"])
	// The end/start ordering check is skipped once the start is invalid.
	assert.NotContains(t, errs, "endDate")
}

func TestValidate_Trip_BothDatesRequired_TimesOptional(t *testing.T) {
	form := validTripForm()
	form.StartDate = ""
	form.EndDate = ""

	_, errs := service.ValidateEventForm(form, false, validateNow)

	assert.Equal(t, "The start date is required.", errs["startDate"])
	assert.Equal(t, "The end date is required.", errs["endDate"])
	assert.NotContains(t, errs, "startTime")
	assert.NotContains(t, errs, "endTime")
}

// ---- access mode -----------------------------------------------------------

func TestValidate_PaidModesRequirePositiveAmount(t *testing.T) {
	for _, mode := range []domain.AccessMode{domain.AccessPaid, domain.AccessFreePaid} {
		form := validOneDayForm()
		form.AccessMode = mode
		form.Amount = 0

		_, errs := service.ValidateEventForm(form, false, validateNow)

		assert.Equal(t, "A positive amount is required for paid events.", errs["amount"], "mode %s", mode)
	}

	form := validOneDayForm()
	form.AccessMode = domain.AccessFree
	form.Amount = 0
	ok, _ := service.ValidateEventForm(form, false, validateNow)
	assert.True(t, ok)
}

// ---- edit mode -------------------------------------------------------------

// Editing re-validates only the name: any other invalid field must not block
// submission.
func TestValidate_EditMode_OnlyNameChecked(t *testing.T) {
	form := domain.EventForm{
		Name: "Renamed Event",
		Type: domain.EventTrip,
		// Everything else invalid on purpose.
		Date:      "garbage",
		StartDate: "",
		EndDate:   "",
		ImageSize: 0,
	}

	ok, errs := service.ValidateEventForm(form, true, validateNow)

	assert.True(t, ok)
	assert.Empty(t, errs)
}

func TestValidate_EditMode_EmptyNameStillFails(t *testing.T) {
	form := domain.EventForm{Name: "  "}

	ok, errs := service.ValidateEventForm(form, true, validateNow)

	assert.False(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "Event name is required.", errs["eventName"])
}

// ---- field ordering --------------------------------------------------------

func TestFieldErrors_First_FollowsDocumentOrder(t *testing.T) {
	errs := domain.FieldErrors{
		"amount":    "A positive amount is required for paid events.",
		"eventName": "Event name is required.",
	}

	assert.Equal(t, "eventName", errs.First(service.FieldOrder))
	assert.Equal(t, "", domain.FieldErrors{}.First(service.FieldOrder))
}

func TestValidate_UnknownEventType(t *testing.T) {
	form := validOneDayForm()
	form.Type = "concert"

	_, errs := service.ValidateEventForm(form, false, validateNow)

	assert.Equal(t, "Unknown event type.", errs["eventType"])
}
