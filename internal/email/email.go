package email

import (
	"context"
	"fmt"

	"github.com/makersair/fhbridge/internal/kafka"
)

// Sender notifies the ops mailbox about webhook outcomes. Delivery is a
// stdout stub until the mail relay is provisioned.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.WebhookEvent) error {
	if event.Error != "" {
		fmt.Printf("notify ops: %s for order %q failed: %s\n", event.Type, event.OrderID, event.Error)
		return nil
	}
	fmt.Printf("notify ops: %s for order %q, depart %v return %v, %d passengers\n",
		event.Type, event.OrderID, event.DepartFlights, event.ReturnFlights, event.Passengers)
	return nil
}
