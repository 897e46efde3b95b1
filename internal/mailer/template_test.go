package mailer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/grievance-service/internal/mailer"
)

func TestRenderComplaintEmailContainsBothLanguages(t *testing.T) {
	body, err := mailer.RenderComplaintEmail(mailer.ComplaintEmailData{
		ComplaintKey:   "GRV-AB12CD34EF",
		UserName:       "Asha Verma",
		DepartmentName: "Water Supply",
		Address:        "12 MG Road, Jaipur",
		Phone:          "9876543210",
		EnglishContent: "To the Officer, I wish to report a water outage.",
		HindiContent:   "सेवा में, जल आपूर्ति बाधित है।",
		Date:           "1 September 2026",
		Time:           "10:30:00 AM",
	})

	assert.NoError(t, err)
	assert.Contains(t, body, "Complaint Application (English)")
	assert.Contains(t, body, "प्रार्थना पत्र (हिंदी)")
	assert.Contains(t, body, "GRV-AB12CD34EF")
	assert.Contains(t, body, "Asha Verma")
	assert.Contains(t, body, "To the Officer, I wish to report a water outage.")
	assert.Contains(t, body, "सेवा में, जल आपूर्ति बाधित है।")
	assert.Contains(t, body, "1 September 2026")
}

func TestRenderComplaintEmailDefaultsTimestamp(t *testing.T) {
	body, err := mailer.RenderComplaintEmail(mailer.ComplaintEmailData{
		ComplaintKey: "GRV-AB12CD34EF",
	})

	assert.NoError(t, err)
	assert.Contains(t, body, "Date:")
	assert.Contains(t, body, "तिथि:")
}

func TestRenderComplaintEmailEscapesContent(t *testing.T) {
	body, err := mailer.RenderComplaintEmail(mailer.ComplaintEmailData{
		ComplaintKey:   "GRV-AB12CD34EF",
		EnglishContent: "<script>alert(1)</script>",
	})

	assert.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}
