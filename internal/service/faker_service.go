package service

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
)

// FakerService generates realistic-looking sample data.
type FakerService struct {
	faker *gofakeit.Faker
}

// NewFakerService builds the service.
func NewFakerService() *FakerService {
	return &FakerService{faker: gofakeit.New(0)}
}

var fakerTypes = []string{
	"name", "email", "address", "phone", "date", "company", "person", "internet",
}

// Types lists the supported data types.
func (s *FakerService) Types() []string {
	return append([]string(nil), fakerTypes...)
}

// Generate produces count items of the requested type.
func (s *FakerService) Generate(dataType string, count int) ([]map[string]any, error) {
	if count <= 0 {
		count = 1
	}
	if count > 100 {
		count = 100
	}

	items := make([]map[string]any, 0, count)
	for i := 0; i < count; i++ {
		item, err := s.generateOne(strings.ToLower(dataType))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *FakerService) generateOne(dataType string) (map[string]any, error) {
	f := s.faker
	switch dataType {
	case "name":
		return map[string]any{
			"fullName":  f.Name(),
			"firstName": f.FirstName(),
			"lastName":  f.LastName(),
			"username":  f.Username(),
		}, nil
	case "email":
		return map[string]any{
			"email":  f.Email(),
			"domain": f.DomainName(),
		}, nil
	case "address":
		addr := f.Address()
		return map[string]any{
			"fullAddress":   addr.Address,
			"streetAddress": addr.Street,
			"city":          addr.City,
			"state":         addr.State,
			"zipCode":       addr.Zip,
			"country":       addr.Country,
		}, nil
	case "phone":
		return map[string]any{
			"phoneNumber": f.Phone(),
			"formatted":   f.PhoneFormatted(),
		}, nil
	case "date":
		return map[string]any{
			"past":   f.PastDate(),
			"future": f.FutureDate(),
		}, nil
	case "company":
		return map[string]any{
			"name":        f.Company(),
			"industry":    f.BuzzWord(),
			"catchPhrase": f.Slogan(),
			"url":         f.URL(),
		}, nil
	case "person":
		return map[string]any{
			"name":     f.Name(),
			"email":    f.Email(),
			"phone":    f.Phone(),
			"company":  f.Company(),
			"jobTitle": f.JobTitle(),
		}, nil
	case "internet":
		return map[string]any{
			"email":      f.Email(),
			"url":        f.URL(),
			"domain":     f.DomainName(),
			"ipv4":       f.IPv4Address(),
			"ipv6":       f.IPv6Address(),
			"macAddress": f.MacAddress(),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported type %q, supported: %s", dataType, strings.Join(fakerTypes, ", "))
	}
}
