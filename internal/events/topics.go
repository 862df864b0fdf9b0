package events

// Topic constants for domain events emitted by cart mutations.
const (
	TopicCartItemAdded       = "cart.item_added"
	TopicCartItemRemoved     = "cart.item_removed"
	TopicCartDiscountApplied = "cart.discount_applied"
	TopicCartDiscountRemoved = "cart.discount_removed"
	TopicCartEmptied         = "cart.emptied"
)

// DefaultTopics returns the canonical list of emitted topics.
func DefaultTopics() []string {
	return []string{
		TopicCartItemAdded,
		TopicCartItemRemoved,
		TopicCartDiscountApplied,
		TopicCartDiscountRemoved,
		TopicCartEmptied,
	}
}
