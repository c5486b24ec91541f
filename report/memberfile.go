package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/societyhub/society-portal-go/models"
)

// MemberFile renders a member's detail sheet with their audit log, newest
// entry first.
func MemberFile(member models.Member, logs []models.AuditLogEntry) ([]byte, error) {
	sorted := make([]models.AuditLogEntry, len(logs))
	copy(sorted, logs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Member Details")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	line := func(label, value string) {
		pdf.Cell(0, 8, label+": "+value)
		pdf.Ln(8)
	}
	line("Full Name", member.FullName)
	line("Apartment Number", member.ApartmentNumber)
	line("Room No.", member.RoomNo)
	line("Email", member.Email)
	line("Phone Number", member.PhoneNumber)
	line("Status", member.Status)
	at := time.Now()
	if len(sorted) > 0 {
		at = sorted[0].Date
	}
	line("At Date", at.Format("2006-01-02 15:04:05"))
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "Audit Log:")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	if len(sorted) == 0 {
		pdf.Cell(0, 7, "No logs found.")
		pdf.Ln(7)
	}
	for i, entry := range sorted {
		text := fmt.Sprintf("%d. [%s] by %s on %s (type: %s)",
			i+1, entry.Action, entry.Admin, entry.Date.Format("2006-01-02 15:04:05"), entry.Type)
		if len(entry.Details) > 0 {
			if details, err := json.Marshal(entry.Details); err == nil {
				text += " | Details: " + string(details)
			}
		}
		pdf.MultiCell(0, 6, text, "", "L", false)
		pdf.Ln(1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render member file: %w", err)
	}
	return buf.Bytes(), nil
}
