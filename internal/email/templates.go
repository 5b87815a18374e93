package email

import (
	"fmt"
	"strings"
)

func confirmationBody(d AppointmentDetails) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<h2>Hi %s,</h2>", d.CustomerName))
	b.WriteString(fmt.Sprintf("<p>Your booking at <strong>%s</strong> was received.</p>", d.BusinessName))
	b.WriteString("<ul>")
	b.WriteString(fmt.Sprintf("<li>Service: %s</li>", d.ServiceName))
	b.WriteString(fmt.Sprintf("<li>Date: %s at %s</li>", d.Date, d.Time))
	b.WriteString(fmt.Sprintf("<li>Duration: %d minutes</li>", d.DurationMinutes))
	if d.BusinessAddress != "" {
		b.WriteString(fmt.Sprintf("<li>Address: %s</li>", d.BusinessAddress))
	}
	if d.BusinessPhone != "" {
		b.WriteString(fmt.Sprintf("<li>Phone: %s</li>", d.BusinessPhone))
	}
	b.WriteString("</ul>")
	if d.CancelLink != "" {
		b.WriteString(fmt.Sprintf(`<p>Need to cancel? <a href="%s">Cancel your appointment</a> (up to 2 hours before).</p>`, d.CancelLink))
	}
	return b.String()
}

func reminderBody(d AppointmentDetails) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<h2>Hi %s,</h2>", d.CustomerName))
	b.WriteString(fmt.Sprintf("<p>This is a reminder of your appointment tomorrow at <strong>%s</strong>.</p>", d.BusinessName))
	b.WriteString("<ul>")
	b.WriteString(fmt.Sprintf("<li>Service: %s</li>", d.ServiceName))
	b.WriteString(fmt.Sprintf("<li>Date: %s at %s</li>", d.Date, d.Time))
	if d.BusinessAddress != "" {
		b.WriteString(fmt.Sprintf("<li>Address: %s</li>", d.BusinessAddress))
	}
	b.WriteString("</ul>")
	if d.ConfirmLink != "" {
		b.WriteString(fmt.Sprintf(`<p><a href="%s">Confirm your appointment</a></p>`, d.ConfirmLink))
	}
	if d.CancelLink != "" {
		b.WriteString(fmt.Sprintf(`<p><a href="%s">Cancel</a> (up to 2 hours before).</p>`, d.CancelLink))
	}
	return b.String()
}

func cancellationBody(d AppointmentDetails) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<h2>Hi %s,</h2>", d.CustomerName))
	b.WriteString(fmt.Sprintf("<p>Your appointment at <strong>%s</strong> on %s at %s was cancelled.</p>",
		d.BusinessName, d.Date, d.Time))
	if d.RescheduleLink != "" {
		b.WriteString(fmt.Sprintf(`<p><a href="%s">Book a new time</a></p>`, d.RescheduleLink))
	}
	if d.BusinessPhone != "" {
		b.WriteString(fmt.Sprintf("<p>Questions? Call us at %s.</p>", d.BusinessPhone))
	}
	return b.String()
}
