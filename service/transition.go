package service

import "skillswap-service/model"

// parseTargetStatus accepts the statuses a participant may move an exchange
// to. Pending is the initial status only.
func parseTargetStatus(raw string) (model.ExchangeStatus, error) {
	switch status := model.ExchangeStatus(raw); status {
	case model.ExchangeAccepted, model.ExchangeRejected, model.ExchangeCompleted, model.ExchangeCancelled:
		return status, nil
	}
	return "", newError(KindInvalidStatus, "Invalid status update provided.")
}

// authorizeTransition checks that userID may move exchange to next.
//
// Only the accepter answers a pending proposal. Either participant may
// complete or cancel an exchange that has not already been completed or
// cancelled; a rejected exchange is not terminal.
func authorizeTransition(exchange *model.Exchange, userID uint, next model.ExchangeStatus) error {
	switch next {
	case model.ExchangeAccepted, model.ExchangeRejected:
		if exchange.AccepterID != userID {
			return newError(KindUnauthorized, "Not authorized to accept/reject this exchange.")
		}
		if exchange.Status != model.ExchangePending {
			return newError(KindInvalidTransition, "Cannot change status from %s to %s.", exchange.Status, next)
		}
	case model.ExchangeCompleted, model.ExchangeCancelled:
		if !exchange.HasParticipant(userID) {
			return newError(KindUnauthorized, "Not authorized to complete/cancel this exchange.")
		}
		if exchange.Status.IsTerminal() {
			return newError(KindAlreadyTerminal, "Exchange is already %s.", exchange.Status)
		}
	default:
		return newError(KindInvalidStatus, "Invalid status update provided.")
	}
	return nil
}
