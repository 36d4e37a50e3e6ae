package messaging

import "fmt"

// Driver selects a concrete broker implementation.
type Driver string

const (
	// DriverDirect selects the in-process implementation.
	DriverDirect Driver = "direct"
	// DriverNATS selects the core NATS implementation.
	DriverNATS Driver = "nats"
	// DriverKafka selects the Apache Kafka implementation.
	DriverKafka Driver = "kafka"
)

// FactoryOptions carries the configuration for every supported driver.
type FactoryOptions struct {
	NATS  NATSConfig
	Kafka KafkaConfig
}

// NewFromDriver builds a Messaging client for the given driver.
func NewFromDriver(driver Driver, opts FactoryOptions) (Messaging, error) {
	switch driver {
	case DriverDirect, "":
		return NewDirect(), nil
	case DriverNATS:
		return NewNATS(opts.NATS)
	case DriverKafka:
		return NewKafka(opts.Kafka)
	default:
		return nil, fmt.Errorf("messaging: unknown driver %q", driver)
	}
}
