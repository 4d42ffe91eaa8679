// Package jobs holds the background jobs dispatched through pkg/queue.
package jobs

import (
	"fmt"

	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/pkg/mail"
	"github.com/shashiranjanraj/bazaar/pkg/queue"
)

// OrderConfirmationJobName is the registry key for deserialization.
const OrderConfirmationJobName = "*jobs.OrderConfirmationJob"

// OrderConfirmationJob mails the buyer a confirmation for one order.
// Dispatched by the order.created listener, one job per order.
type OrderConfirmationJob struct {
	OrderID uint `json:"order_id"`
}

// RegisterJobs wires every job type into the queue registry. Called once
// at boot before workers start.
func RegisterJobs() {
	queue.Register(OrderConfirmationJobName, func() queue.Job { return &OrderConfirmationJob{} })
}

func (j *OrderConfirmationJob) Handle() error {
	orders := repositories.NewOrderRepository()

	order, err := orders.FindByID(j.OrderID)
	if err != nil {
		return fmt.Errorf("order confirmation: load order %d: %w", j.OrderID, err)
	}

	if order.Buyer.Email == "" {
		return nil // nothing to send to
	}

	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your order <strong>%s</strong> for %s has been placed.</p>",
		order.Buyer.FirstName, order.OrderNo, order.Item.Name,
	)

	return mail.To(order.Buyer.Email).
		Subject(fmt.Sprintf("Order confirmation %s", order.OrderNo)).
		Body(body).
		Send()
}
