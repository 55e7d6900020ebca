package importer

import (
	"context"
	"strings"
	"testing"

	"pizza-storefront/internal/domain"
)

type stubPizzaWriter struct {
	items []domain.PizzaDefinition
}

func (s *stubPizzaWriter) Upsert(_ context.Context, p domain.PizzaDefinition) error {
	s.items = append(s.items, p)
	return nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `id,name,group,description,price.small,price.medium,price.large,topping
hawaiian,Hawaiian,Classics,Ham and pineapple,11.99,14.99,17.99,Ham
,,,,,,,pineapple
garden,Garden Party,veggie lovers,"Mushrooms, onions",11.49,14.49,17.49,mushrooms
,,,,,,,Green_Peppers
plain,Plain,classics,,9,11,13,`

	writer := &stubPizzaWriter{}
	imp := NewCSVImporter(strings.NewReader(csvData), writer)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 pizzas imported, got %d", count)
	}

	hawaiian := writer.items[0]
	if hawaiian.ID != "hawaiian" || hawaiian.Group != domain.GroupClassics || hawaiian.Kind != domain.KindSpecialty {
		t.Fatalf("unexpected pizza %+v", hawaiian)
	}
	if len(hawaiian.BaseToppings) != 2 || hawaiian.BaseToppings[0] != domain.Ham || hawaiian.BaseToppings[1] != domain.Pineapple {
		t.Fatalf("unexpected toppings %v", hawaiian.BaseToppings)
	}
	if hawaiian.Price[domain.SizeLarge].String() != "17.99" {
		t.Fatalf("unexpected large price %s", hawaiian.Price[domain.SizeLarge])
	}

	garden := writer.items[1]
	if garden.Description != "Mushrooms, onions" {
		t.Fatalf("unexpected description %q", garden.Description)
	}
	if garden.BaseToppings[1] != domain.GreenPeppers {
		t.Fatalf("expected normalized topping, got %q", garden.BaseToppings[1])
	}

	if len(writer.items[2].BaseToppings) != 0 {
		t.Fatalf("expected plain pizza without toppings, got %v", writer.items[2].BaseToppings)
	}
}

func TestCSVImporter_RejectsBadPrices(t *testing.T) {
	cases := map[string]string{
		"missing price": `id,name,price.small,price.medium,price.large
p1,One,9,11,`,
		"not a number": `id,name,price.small,price.medium,price.large
p1,One,9,eleven,13`,
		"negative": `id,name,price.small,price.medium,price.large
p1,One,-9,11,13`,
		"missing name": `id,name,price.small,price.medium,price.large
p1,,9,11,13`,
	}
	for name, csvData := range cases {
		t.Run(name, func(t *testing.T) {
			writer := &stubPizzaWriter{}
			_, err := NewCSVImporter(strings.NewReader(csvData), writer).Run(context.Background())
			if err == nil {
				t.Fatalf("expected error")
			}
			if len(writer.items) != 0 {
				t.Fatalf("expected nothing written, got %d", len(writer.items))
			}
		})
	}
}
