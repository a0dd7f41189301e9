// Package kafka publishes merged movie records to a kafka topic as
// avro-binary messages keyed by title id, for consumers downstream of the
// batch job.
package kafka

import (
	"github.com/Shopify/sarama"
	"github.com/pkg/errors"
	"github.com/titlekit/titlekit"
	"github.com/titlekit/titlekit/avro"

	goavro "github.com/linkedin/goavro/v2"
)

// Sink is a titlekit.Sink backed by a sarama SyncProducer.
type Sink struct {
	Topic string

	codec    *goavro.Codec
	producer sarama.SyncProducer
}

// NewSink connects a synchronous producer to hosts and returns a Sink
// publishing to topic.
func NewSink(hosts []string, topic string) (*Sink, error) {
	codec, err := avro.NewCodec()
	if err != nil {
		return nil, errors.Wrap(err, "getting codec")
	}
	conf := sarama.NewConfig()
	conf.Version = sarama.V0_10_0_0
	conf.Producer.Return.Successes = true
	producer, err := sarama.NewSyncProducer(hosts, conf)
	if err != nil {
		return nil, errors.Wrap(err, "getting sync producer")
	}
	return &Sink{
		Topic:    topic,
		codec:    codec,
		producer: producer,
	}, nil
}

// Write implements titlekit.Sink.
func (s *Sink) Write(m titlekit.MovieRating) error {
	buf, err := s.codec.BinaryFromNative(nil, avro.Native(m))
	if err != nil {
		return errors.Wrap(err, "encoding record")
	}
	_, _, err = s.producer.SendMessage(&sarama.ProducerMessage{
		Topic: s.Topic,
		Key:   sarama.StringEncoder(m.ID),
		Value: sarama.ByteEncoder(buf),
	})
	return errors.Wrap(err, "sending message")
}

// Close shuts down the producer.
func (s *Sink) Close() error {
	return errors.Wrap(s.producer.Close(), "closing producer")
}
