package postgres_test

import "authledger/internal/ledger"

func ledgerAttempt(email string, success bool) ledger.Attempt {
	outcome := ledger.OutcomeWrongPassword
	if success {
		outcome = ledger.OutcomeSuccess
	}
	return ledger.Attempt{
		Email:     email,
		Password:  "pw",
		IPAddress: "127.0.0.1",
		UserAgent: "test-agent",
		Outcome:   outcome,
	}
}
