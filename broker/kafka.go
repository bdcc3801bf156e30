package broker

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"chat-relay/contract"
	"chat-relay/domain"

	"github.com/google/uuid"
	kafka "github.com/segmentio/kafka-go"
)

var (
	_ contract.Broker         = (*KafkaBroker)(nil)
	_ contract.BrokerConsumer = (*KafkaConsumer)(nil)
)

// wireMessage is the JSON shape of a message on the topic.
type wireMessage struct {
	ID        string `json:"id"`
	Room      int    `json:"roomId"`
	Sender    int64  `json:"senderId"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"createdAt"`
	Status    string `json:"status"`
}

// KafkaBroker publishes messages to a Kafka topic. The room id is the
// partition key so messages of one room land on one partition and keep
// their relative order for the persistence consumer.
type KafkaBroker struct {
	writer *kafka.Writer
}

// Writers are safe for concurrent use.
func NewKafkaBroker(brokers []string, topic string) *KafkaBroker {
	return &KafkaBroker{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			RequiredAcks: kafka.RequireOne,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

func (b *KafkaBroker) Publish(ctx context.Context, msg domain.Message) error {
	value, err := json.Marshal(toWire(msg))
	if err != nil {
		return err
	}
	return b.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(roomKey(msg.Room)),
		Value: value,
	})
}

func (b *KafkaBroker) Close() error {
	return b.writer.Close()
}

// KafkaConsumer reads the topic inside a consumer group and feeds each
// decoded message to the handler. Undecodable payloads are logged and
// skipped: poisoned records must not wedge the whole partition.
type KafkaConsumer struct {
	reader *kafka.Reader
	log    *slog.Logger
}

func NewKafkaConsumer(brokers []string, groupID, topic string, log *slog.Logger) *KafkaConsumer {
	return &KafkaConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			GroupID: groupID,
			Topic:   topic,
		}),
		log: log,
	}
}

func (c *KafkaConsumer) Consume(ctx context.Context, handler func(ctx context.Context, msg domain.Message) error) error {
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Warn("Kafka read error", "error", err)
			continue
		}
		msg, err := fromWire(m.Value)
		if err != nil {
			c.log.Warn("Skipping undecodable kafka record",
				"topic", m.Topic, "partition", m.Partition, "offset", m.Offset, "error", err)
			continue
		}
		if err := handler(ctx, msg); err != nil {
			c.log.Warn("Kafka handler error", "id", msg.ID, "error", err)
		}
	}
}

func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}

func toWire(msg domain.Message) wireMessage {
	return wireMessage{
		ID:        msg.ID.String(),
		Room:      int(msg.Room),
		Sender:    int64(msg.Sender),
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt.UnixNano(),
		Status:    string(msg.Status),
	}
}

func fromWire(value []byte) (domain.Message, error) {
	var w wireMessage
	if err := json.Unmarshal(value, &w); err != nil {
		return domain.Message{}, err
	}
	id, err := uuid.Parse(w.ID)
	if err != nil {
		return domain.Message{}, err
	}
	return domain.Message{
		ID:        id,
		Room:      domain.RoomID(w.Room),
		Sender:    domain.UserID(w.Sender),
		Content:   w.Content,
		CreatedAt: time.Unix(0, w.CreatedAt).UTC(),
		Status:    domain.Status(w.Status),
	}, nil
}

func roomKey(room domain.RoomID) string {
	return "room-" + strconv.Itoa(int(room))
}
