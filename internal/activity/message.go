package activity

import "fmt"

// BuildMessage renders the audit message for an event. Metadata keys are
// event-specific; missing keys render as empty strings rather than failing,
// the log must never block the operation that emits it.
func BuildMessage(event EventType, actorName string, meta map[string]string) string {
	switch event {
	case EventLogin:
		return fmt.Sprintf("%s logged in", actorName)
	case EventGroupJoin:
		return fmt.Sprintf("%s joined %s on %s", actorName, meta["group_title"], meta["group_date"])
	case EventGroupLeave:
		return fmt.Sprintf("%s left %s on %s", actorName, meta["group_title"], meta["group_date"])
	case EventMemberAdd:
		return fmt.Sprintf("%s added member %s", actorName, meta["member_name"])
	case EventMemberRemove:
		return fmt.Sprintf("%s removed member %s", actorName, meta["member_name"])
	case EventPaymentAdd:
		return fmt.Sprintf("%s recorded a %s payment of %s for %s",
			actorName, meta["method"], meta["amount"], meta["member_name"])
	case EventPaymentRemove:
		return fmt.Sprintf("%s deleted a payment for %s", actorName, meta["member_name"])
	case EventBaseSlotActivate:
		return fmt.Sprintf("%s activated base slot %s", actorName, meta["title"])
	case EventBaseSlotDeactivate:
		return fmt.Sprintf("%s deactivated base slot %s", actorName, meta["title"])
	default:
		return fmt.Sprintf("%s: %s", actorName, event)
	}
}
