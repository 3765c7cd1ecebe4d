package notify

import "testing"

func TestFunc_Notify(t *testing.T) {
	var received []Notice
	n := Func(func(notice Notice) {
		received = append(received, notice)
	})

	n.Notify(Error("boom"))
	n.Notify(Success("done"))

	if len(received) != 2 {
		t.Fatalf("expected 2 notices, got %d", len(received))
	}
	if received[0].Level != LevelError || received[0].Message != "boom" {
		t.Errorf("first notice = %+v, expected error boom", received[0])
	}
	if received[1].Level != LevelSuccess {
		t.Errorf("second notice level = %s, expected success", received[1].Level)
	}
}

func TestFunc_NilSafe(t *testing.T) {
	var n Func
	// Must not panic.
	n.Notify(Info("ignored"))
}

func TestOutOfCredits(t *testing.T) {
	n := OutOfCredits("no credits remaining")
	if n.Level != LevelError {
		t.Errorf("expected error level, got %s", n.Level)
	}
	if !n.UpgradeCTA {
		t.Error("expected UpgradeCTA to be set")
	}
}
