package domain

import "testing"

func TestCanTransitionDeposit(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{DepositPending, DepositPaid, true},
		{DepositPending, DepositExpired, true},
		{DepositPending, DepositCancelled, true},
		{DepositPending, DepositRefunded, false},
		{DepositPaid, DepositRefunded, true},
		{DepositPaid, DepositPending, false},
		{DepositPaid, DepositExpired, false},
		{DepositExpired, DepositPaid, false},
		{DepositCancelled, DepositPaid, false},
		{DepositRefunded, DepositPaid, false},
		{DepositPending, DepositPending, false},
	}
	for _, c := range cases {
		if got := CanTransitionDeposit(c.from, c.to); got != c.want {
			t.Errorf("CanTransitionDeposit(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	for _, terminal := range []string{DepositExpired, DepositCancelled, DepositRefunded} {
		for _, to := range []string{DepositPending, DepositPaid, DepositExpired, DepositRefunded, DepositCancelled} {
			if CanTransitionDeposit(terminal, to) {
				t.Errorf("%s should be terminal but allows transition to %s", terminal, to)
			}
		}
	}
}

func TestValidDepositStatus(t *testing.T) {
	for _, s := range []string{DepositPending, DepositPaid, DepositExpired, DepositRefunded, DepositCancelled} {
		if !ValidDepositStatus(s) {
			t.Errorf("ValidDepositStatus(%s) = false", s)
		}
	}
	for _, s := range []string{"", "paid", "SHIPPED", "PENDING "} {
		if ValidDepositStatus(s) {
			t.Errorf("ValidDepositStatus(%q) = true", s)
		}
	}
}
