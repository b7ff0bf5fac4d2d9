package kafka

import (
	"testing"
)

func TestNewProducer(t *testing.T) {
	cfg := Config{
		Brokers:       []string{"localhost:9092", "localhost:9093"},
		ConsumerGroup: "servicing",
	}

	p := NewProducer(cfg)
	if p == nil {
		t.Fatal("expected non-nil producer")
	}
	if len(p.brokers) != 2 {
		t.Fatalf("expected 2 brokers, got %d", len(p.brokers))
	}
	if p.brokers[0] != "localhost:9092" {
		t.Errorf("expected broker localhost:9092, got %s", p.brokers[0])
	}
	if p.writers == nil {
		t.Fatal("expected writers map to be initialized")
	}
	if len(p.writers) != 0 {
		t.Errorf("expected empty writers map, got %d entries", len(p.writers))
	}
	if p.transport != nil {
		t.Error("expected nil transport without TLS or SASL")
	}
}

func TestNewProducerTLSTransport(t *testing.T) {
	cfg := Config{
		Brokers: []string{"kafka:9092"},
		TLS:     true,
	}

	p := NewProducer(cfg)
	if p.transport == nil {
		t.Fatal("expected transport when TLS is enabled")
	}
	if p.transport.TLS == nil {
		t.Error("expected TLS config on transport")
	}
	if p.transport.SASL != nil {
		t.Error("expected no SASL mechanism without SASLEnabled")
	}
}

func TestNewProducerSASLTransport(t *testing.T) {
	cfg := Config{
		Brokers:       []string{"kafka:9092"},
		SASLEnabled:   true,
		SASLMechanism: "SCRAM-SHA-256",
		SASLUsername:  "servicing",
		SASLPassword:  "secret",
	}

	p := NewProducer(cfg)
	if p.transport == nil {
		t.Fatal("expected transport when SASL is enabled")
	}
	if p.transport.SASL == nil {
		t.Error("expected SASL mechanism on transport")
	}
}

func TestResolveSASL(t *testing.T) {
	tests := []struct {
		name      string
		mechanism string
		wantNil   bool
	}{
		{name: "plain", mechanism: "PLAIN", wantNil: false},
		{name: "empty defaults to plain", mechanism: "", wantNil: false},
		{name: "scram sha256", mechanism: "SCRAM-SHA-256", wantNil: false},
		{name: "scram sha512", mechanism: "SCRAM-SHA-512", wantNil: false},
		{name: "unknown mechanism", mechanism: "GSSAPI", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := resolveSASL(Config{
				SASLMechanism: tt.mechanism,
				SASLUsername:  "user",
				SASLPassword:  "pass",
			})
			if (m == nil) != tt.wantNil {
				t.Errorf("resolveSASL(%q) nil = %v, want %v", tt.mechanism, m == nil, tt.wantNil)
			}
		})
	}
}

func TestMessageConstruction(t *testing.T) {
	msg := Message{
		Key:   []byte("loan-123"),
		Value: []byte(`{"entries":360}`),
		Headers: map[string]string{
			"event_type": "servicing.schedule.calculated",
			"tenant_id":  "tenant-001",
		},
	}

	if string(msg.Key) != "loan-123" {
		t.Errorf("expected key loan-123, got %s", string(msg.Key))
	}
	if len(msg.Headers) != 2 {
		t.Fatalf("expected 2 headers, got %d", len(msg.Headers))
	}
	if msg.Headers["event_type"] != "servicing.schedule.calculated" {
		t.Errorf("unexpected event_type header: %s", msg.Headers["event_type"])
	}
}
