package mailer

import (
	"bytes"
	"html/template"
	"time"
)

// ComplaintEmailData feeds the bilingual confirmation template.
type ComplaintEmailData struct {
	ComplaintKey   string
	UserName       string
	DepartmentName string
	Address        string
	Phone          string
	EnglishContent string
	HindiContent   string
	Date           string
	Time           string
}

// The confirmation carries the English application on one page and the Hindi
// application on the next, matching the printed form a department expects.
var complaintTemplate = template.Must(template.New("complaint").Parse(`
<div style="font-family: 'Times New Roman', serif; padding: 40px; background-color: #f4f4f4;">
  <div style="background-color: #ffffff; padding: 30px; border-radius: 8px; margin-bottom: 40px; page-break-after: always;">
    <div style="text-align: right; margin-bottom: 20px;">
      <strong>Date:</strong> {{.Date}}<br/>
      <strong>Time:</strong> {{.Time}}
    </div>
    <h2 style="text-align: center; color: #2c3e50; margin-bottom: 20px;">Citizen Grievance Portal</h2>
    <h3 style="text-align: center; color: #2c3e50; margin-bottom: 30px;">Complaint Application (English)</h3>
    <p><strong>Complaint ID:</strong> {{.ComplaintKey}}</p>
    <p><strong>User Name:</strong> {{.UserName}}</p>
    <p><strong>Department:</strong> {{.DepartmentName}}</p>
    <p><strong>Address:</strong> {{.Address}}</p>
    <p><strong>Phone:</strong> {{.Phone}}</p>
    <hr style="margin-bottom: 20px;" />
    <div style="white-space: pre-wrap; line-height: 1.6; margin-bottom: 30px;">{{.EnglishContent}}</div>
    <p style="text-align: center; color: gray;">You are receiving this email from the Citizen Grievance Portal.</p>
  </div>
  <div style="background-color: #ffffff; padding: 30px; border-radius: 8px;">
    <div style="text-align: right; margin-bottom: 20px;">
      <strong>तिथि:</strong> {{.Date}}<br/>
      <strong>समय:</strong> {{.Time}}
    </div>
    <h2 style="text-align: center; color: #2c3e50; margin-bottom: 20px;">नागरिक शिकायत पोर्टल</h2>
    <h3 style="text-align: center; color: #2c3e50; margin-bottom: 30px;">प्रार्थना पत्र (हिंदी)</h3>
    <p><strong>शिकायत ID:</strong> {{.ComplaintKey}}</p>
    <p><strong>प्रयोक्ता का नाम:</strong> {{.UserName}}</p>
    <p><strong>विभाग:</strong> {{.DepartmentName}}</p>
    <p><strong>पता:</strong> {{.Address}}</p>
    <p><strong>फोन:</strong> {{.Phone}}</p>
    <hr style="margin-bottom: 20px;" />
    <div style="white-space: pre-wrap; line-height: 1.6; margin-bottom: 30px;">{{.HindiContent}}</div>
    <p style="text-align: center; color: gray;">आपको यह ईमेल नागरिक शिकायत पोर्टल से प्राप्त हो रहा है।</p>
  </div>
</div>`))

// RenderComplaintEmail produces the bilingual confirmation body.
func RenderComplaintEmail(data ComplaintEmailData) (string, error) {
	if data.Date == "" || data.Time == "" {
		now := time.Now()
		data.Date = now.Format("2 January 2006")
		data.Time = now.Format("03:04:05 PM")
	}
	var buf bytes.Buffer
	if err := complaintTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
