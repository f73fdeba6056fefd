package services

import "testing"

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    Intent
	}{
		{"empty", "", IntentUnclear},
		{"whitespace", "   ", IntentUnclear},
		{"spanish yes", "sí", IntentConfirm},
		{"spanish yes unaccented", "si", IntentConfirm},
		{"yes with punctuation", "si, generar", IntentConfirm},
		{"english yes", "yes please", IntentConfirm},
		{"ok", "ok", IntentConfirm},
		{"dale", "dale", IntentConfirm},
		{"generate", "generate it", IntentConfirm},
		{"adelante", "adelante", IntentConfirm},
		{"modify spanish", "quiero modificar la longitud", IntentModify},
		{"change english", "change the audience", IntentModify},
		{"cancel spanish", "cancelar", IntentCancel},
		{"cancel english", "cancel this", IntentCancel},
		{"unrelated", "what happens next?", IntentUnclear},
		{"ok inside word stays unclear", "look at the book", IntentUnclear},
		{"sin is not si", "sin keywords", IntentUnclear},
		{"modify beats confirm", "sí pero quiero cambiar el título", IntentModify},
		{"modify beats cancel", "cancel the changes", IntentModify},
		{"cancel beats confirm", "ok, cancelar todo", IntentCancel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyIntent(tt.message); got != tt.want {
				t.Errorf("ClassifyIntent(%q) = %v, want %v", tt.message, got, tt.want)
			}
		})
	}
}
