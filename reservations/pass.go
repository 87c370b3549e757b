package reservations

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"seaops/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

func passSecret() []byte {
	if s := os.Getenv("PASS_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("dev-only-pass-secret")
}

// PassPayload returns the signed QR content for check-in:
// reservationID|vessel|date|signature
func PassPayload(reservationID, vessel, date string) string {
	data := fmt.Sprintf("%s|%s|%s", reservationID, vessel, date)
	h := hmac.New(sha256.New, passSecret())
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// VerifyPassPayload checks the signature of a scanned QR payload.
func VerifyPassPayload(payload string) bool {
	idx := -1
	for i := len(payload) - 1; i >= 0; i-- {
		if payload[i] == '|' {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return false
	}
	data, sig := payload[:idx], payload[idx+1:]

	h := hmac.New(sha256.New, passSecret())
	h.Write([]byte(data))
	want := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(sig), []byte(want))
}

// VerifyPass handles POST /api/passes/verify: the check-in scanner posts
// the raw QR payload and gets back the reservation it belongs to.
func VerifyPass(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Payload string `json:"payload"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Payload == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Payload required")
		return
	}
	if !VerifyPassPayload(input.Payload) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or tampered pass")
		return
	}

	id := strings.SplitN(input.Payload, "|", 2)[0]
	res, err := findReservation(r, id)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Reservation not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"valid": true, "reservation": res})
}

// PrintPass handles GET /api/reservations/id/:id/pass and streams a PDF
// boarding pass with a signed QR check-in code.
func PrintPass(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	res, err := findReservation(r, ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Reservation not found")
		return
	}
	if res.Status == "cancelled" {
		utils.RespondWithError(w, http.StatusConflict, "Reservation is cancelled")
		return
	}

	qrPNG, err := qrcode.Encode(PassPayload(res.ReservationID, res.Vessel, res.Date), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Boarding Pass")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Name: %s", res.Name))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Vessel: %s", res.Vessel))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Departure: %s %s", res.Date, res.Time))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Party: %d adult, %d child, %d infant", res.Adult, res.Child, res.Infant))
	pdf.Ln(8)
	if res.Channel != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Booked via: %s", res.Channel))
		pdf.Ln(8)
	}
	pdf.Ln(4)

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 75, pdf.GetY(), 60, 60, false, opts, 0, "")

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=pass-%s.pdf", res.ReservationID))
	if err := pdf.Output(w); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to render PDF")
	}
}
