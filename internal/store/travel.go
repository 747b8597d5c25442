package store

import "github.com/google/uuid"

// BudgetItem is one line of the trip budget.
type BudgetItem struct {
	ID     string
	Item   string
	Amount float64
}

// ItineraryItem is one planned activity on a trip day.
type ItineraryItem struct {
	ID       string
	Day      int
	Activity string
}

// Flight is a read-only row in the flight comparison pane.
type Flight struct {
	ID      string
	Airline string
	Route   string
	Price   float64
	Rating  float64
}

// Travel owns the trip-planning state: destination, budget, itinerary
// and the flight comparison list.
type Travel struct {
	destination string
	budget      []BudgetItem
	itinerary   []ItineraryItem
	flights     []Flight
}

// NewTravel returns a travel store with the stock flight options the
// comparison pane renders.
func NewTravel() *Travel {
	return &Travel{
		destination: "Bali, Indonesia",
		flights: []Flight{
			{ID: uuid.NewString(), Airline: "Singapore Airlines", Route: "NYC -> DPS", Price: 1200, Rating: 4.8},
			{ID: uuid.NewString(), Airline: "Qatar Airways", Route: "NYC -> DPS", Price: 950, Rating: 4.9},
			{ID: uuid.NewString(), Airline: "Emirates", Route: "NYC -> DPS", Price: 1050, Rating: 4.7},
		},
	}
}

func (t *Travel) Destination() string        { return t.destination }
func (t *Travel) Budget() []BudgetItem       { return t.budget }
func (t *Travel) Itinerary() []ItineraryItem { return t.itinerary }
func (t *Travel) Flights() []Flight          { return t.flights }

// SetDestination replaces the trip destination.
func (t *Travel) SetDestination(dest string) {
	t.destination = dest
}

// AddBudgetItem appends a budget line.
func (t *Travel) AddBudgetItem(item string, amount float64) BudgetItem {
	b := BudgetItem{ID: uuid.NewString(), Item: item, Amount: amount}
	t.budget = append(t.budget, b)
	return b
}

// AddItineraryItem appends an activity; day 1 when unspecified.
func (t *Travel) AddItineraryItem(activity string, day int) ItineraryItem {
	if day < 1 {
		day = 1
	}
	it := ItineraryItem{ID: uuid.NewString(), Day: day, Activity: activity}
	t.itinerary = append(t.itinerary, it)
	return it
}
