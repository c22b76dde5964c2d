package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/joshua-takyi/villastay/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const whatsAppBaseURL = "https://wa.me/"

type EnquiryRequest struct {
	VillaIDs []string `json:"villaIds" validate:"required,min=1,max=10,dive,uuid"`
	CheckIn  string   `json:"checkIn" validate:"required"`
	CheckOut string   `json:"checkOut" validate:"required"`
	Guests   int      `json:"guests" validate:"required,min=1,max=50"`
	// Direct addresses the business number instead of letting the guest pick a contact.
	Direct bool `json:"direct"`
}

type EnquiryVilla struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	DisplayPrice float64   `json:"displayPrice"`
	Day          string    `json:"day"`
}

type Enquiry struct {
	Message     string         `json:"message"`
	WhatsAppURL string         `json:"whatsappUrl"`
	Villas      []EnquiryVilla `json:"villas"`
}

// EnquiryService composes the WhatsApp booking message for a set of villas.
type EnquiryService struct {
	villasRepo     models.VillasRepo
	whatsAppNumber string
	printer        *message.Printer
}

func NewEnquiryService(villasRepo models.VillasRepo, whatsAppNumber string) *EnquiryService {
	return &EnquiryService{
		villasRepo:     villasRepo,
		whatsAppNumber: digitsOnly(whatsAppNumber),
		printer:        message.NewPrinter(language.English),
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (es *EnquiryService) formatAmount(v float64) string {
	if v == math.Trunc(v) {
		return es.printer.Sprintf("%d", int64(v))
	}
	return es.printer.Sprintf("%.2f", v)
}

// Compose builds the message and the wa.me link. Only approved, active villas are quoted.
func (es *EnquiryService) Compose(ctx context.Context, req EnquiryRequest) (*Enquiry, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	checkIn, err := ParseDate(req.CheckIn)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"checkIn": "must be a date"}}
	}
	checkOut, err := ParseDate(req.CheckOut)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"checkOut": "must be a date"}}
	}
	if !checkOut.After(checkIn) {
		return nil, &ValidationError{Fields: map[string]string{"checkOut": "must be after checkIn"}}
	}

	out := &Enquiry{Villas: make([]EnquiryVilla, 0, len(req.VillaIDs))}
	blocks := make([]string, 0, len(req.VillaIDs))
	for _, raw := range req.VillaIDs {
		id := uuid.MustParse(raw)
		villa, err := es.villasRepo.GetVillaByID(ctx, id)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return nil, fmt.Errorf("%w: villa %s does not exist", ErrInvalidInput, id)
			}
			return nil, storeErr(err, "get villa")
		}
		if !villa.IsApproved || !villa.IsActive {
			return nil, fmt.Errorf("%w: villa %s is not open for booking", ErrInvalidInput, id)
		}

		price := PriceForDate(villa, checkIn)
		day := DayName(checkIn)
		out.Villas = append(out.Villas, EnquiryVilla{
			ID:           villa.ID,
			Name:         villa.Name,
			Location:     villa.Location,
			DisplayPrice: price,
			Day:          day,
		})

		var b strings.Builder
		fmt.Fprintf(&b, "🏡 %s\n📍 %s\n💰 ₹%s/night (%s)", villa.Name, villa.Location, es.formatAmount(price), day)
		if villa.GoogleDriveLink != "" {
			fmt.Fprintf(&b, "\n📸 More photos: %s", villa.GoogleDriveLink)
		}
		b.WriteString("\n")
		blocks = append(blocks, b.String())
	}

	out.Message = fmt.Sprintf(
		"Hi! I'm interested in booking the following villa(s) for %s to %s for %d guest(s):\n\n%s\n\nPlease share availability and booking details. Thank you!",
		checkIn.Format("Jan 02, 2006"),
		checkOut.Format("Jan 02, 2006"),
		req.Guests,
		strings.Join(blocks, "\n"),
	)

	target := whatsAppBaseURL
	if req.Direct && es.whatsAppNumber != "" {
		target += es.whatsAppNumber
	}
	out.WhatsAppURL = target + "?text=" + strings.ReplaceAll(url.QueryEscape(out.Message), "+", "%20")
	return out, nil
}
