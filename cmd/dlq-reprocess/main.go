package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopease/internal/messaging/kafka"
)

const (
	defaultReplayLimit = 100
	defaultIdleTimeout = 2 * time.Second

	originConsumer = "consumer"
	originOutbox   = "outbox"
)

// knownEventTypes — события жизненного цикла заказа, которые имеет смысл
// возвращать в shopease.order.events. Всё остальное в DLQ — мусор или
// сообщения чужого формата, их реплеить нельзя.
var knownEventTypes = map[string]struct{}{
	string(kafka.EventTypeOrderCreated):   {},
	string(kafka.EventTypeOrderPaid):      {},
	string(kafka.EventTypeOrderCancelled): {},
}

type config struct {
	brokers     []string
	sourceTopic string
	targetTopic string
	eventType   string
	orderID     string
	limit       int
	execute     bool
	fromNewest  bool
	idleTimeout time.Duration
}

// replayCandidate — восстановленное из DLQ событие заказа, готовое к реплею.
type replayCandidate struct {
	origin    string
	eventType string
	orderID   string
	topic     string
	key       string
	value     []byte
}

// consumerDLQRecord — формат, который пишет consumer при исчерпании ретраев
// (internal/messaging/kafka: sendToDLQ).
type consumerDLQRecord struct {
	OriginalTopic string `json:"original_topic"`
	OriginalKey   string `json:"original_key"`
	OriginalValue string `json:"original_value"`
	ErrorMessage  string `json:"error_message"`
	RetryCount    int    `json:"retry_count"`
}

// outboxDLQRecord — формат, который пишет outbox-воркер: внешний конверт
// повторяет публикуемый, а payload оборачивает исходное событие.
type outboxDLQRecord struct {
	ID            string          `json:"id"`
	AggregateID   string          `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	EventType     string          `json:"event_type"`
	Payload       json.RawMessage `json:"payload"`
}

type outboxDLQPayload struct {
	OutboxID      string          `json:"outbox_id"`
	AggregateID   string          `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	EventType     string          `json:"event_type"`
	Payload       json.RawMessage `json:"payload"`
	PublishError  string          `json:"publish_error"`
}

// orderEventHeader вытаскивает из произвольного JSON поля, общие для
// OrderEvent и outbox-конверта.
type orderEventHeader struct {
	EventType   string `json:"event_type"`
	OrderID     string `json:"order_id"`
	AggregateID string `json:"aggregate_id"`
}

type replayStats struct {
	processed int
	replayed  int
	skipped   int
	byType    map[string]int
	byOrigin  map[string]int
}

func newReplayStats() *replayStats {
	return &replayStats{
		byType:   make(map[string]int),
		byOrigin: make(map[string]int),
	}
}

func (s *replayStats) countReplay(c replayCandidate) {
	s.replayed++
	s.byType[c.eventType]++
	s.byOrigin[c.origin]++
}

func (s *replayStats) merge(other *replayStats) {
	s.processed += other.processed
	s.replayed += other.replayed
	s.skipped += other.skipped
	for eventType, count := range other.byType {
		s.byType[eventType] += count
	}
	for origin, count := range other.byOrigin {
		s.byOrigin[origin] += count
	}
}

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)

	cfg, err := readConfig()
	if err != nil {
		fail("%v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		fail("dlq replay failed: %v", err)
	}
}

func readConfig() (config, error) {
	var (
		brokersRaw string
		cfg        config
	)

	flag.StringVar(&brokersRaw, "brokers", "", "Kafka brokers as comma-separated list (fallback: KAFKA_BROKERS)")
	flag.StringVar(&cfg.sourceTopic, "source-topic", kafka.TopicDeadLetterQueue, "DLQ source topic")
	flag.StringVar(&cfg.targetTopic, "target-topic", kafka.TopicOrderEvents, "target topic for replay")
	flag.StringVar(&cfg.eventType, "event-type", "", "replay only this order event type (order.created|order.paid|order.cancelled)")
	flag.StringVar(&cfg.orderID, "order-id", "", "replay only events of this order")
	flag.IntVar(&cfg.limit, "limit", defaultReplayLimit, "max number of messages to scan/replay")
	flag.BoolVar(&cfg.execute, "execute", false, "execute replay; default is dry-run")
	flag.BoolVar(&cfg.fromNewest, "from-newest", false, "scan latest messages first (bounded by limit)")
	flag.DurationVar(&cfg.idleTimeout, "idle-timeout", defaultIdleTimeout, "idle timeout per partition")
	flag.Parse()

	if strings.TrimSpace(brokersRaw) == "" {
		brokersRaw = os.Getenv("KAFKA_BROKERS")
	}

	cfg.brokers = parseBrokers(brokersRaw)
	if len(cfg.brokers) == 0 {
		return config{}, fmt.Errorf("kafka brokers are required (-brokers or KAFKA_BROKERS)")
	}
	if strings.TrimSpace(cfg.sourceTopic) == "" {
		return config{}, fmt.Errorf("source-topic is required")
	}
	if strings.TrimSpace(cfg.targetTopic) == "" {
		return config{}, fmt.Errorf("target-topic is required")
	}
	cfg.eventType = strings.TrimSpace(cfg.eventType)
	if cfg.eventType != "" {
		if _, ok := knownEventTypes[cfg.eventType]; !ok {
			return config{}, fmt.Errorf("unknown event-type: %s", cfg.eventType)
		}
	}
	cfg.orderID = strings.TrimSpace(cfg.orderID)
	if cfg.limit <= 0 {
		return config{}, fmt.Errorf("limit must be > 0")
	}
	if cfg.idleTimeout <= 0 {
		return config{}, fmt.Errorf("idle-timeout must be > 0")
	}

	return cfg, nil
}

func parseBrokers(raw string) []string {
	chunks := strings.Split(raw, ",")
	brokers := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		broker := strings.TrimSpace(chunk)
		if broker == "" {
			continue
		}
		brokers = append(brokers, broker)
	}
	return brokers
}

// classifyDLQMessage восстанавливает событие заказа из DLQ-записи любого из
// двух источников. Возвращает ok=false для записей, которые реплеить нельзя.
func classifyDLQMessage(raw []byte, targetTopic string) (replayCandidate, bool, error) {
	var consumerRec consumerDLQRecord
	if err := json.Unmarshal(raw, &consumerRec); err == nil && consumerRec.OriginalValue != "" {
		return classifyConsumerRecord(consumerRec, targetTopic)
	}

	var outboxRec outboxDLQRecord
	if err := json.Unmarshal(raw, &outboxRec); err != nil {
		return replayCandidate{}, false, nil
	}
	if len(outboxRec.Payload) == 0 {
		return replayCandidate{}, false, nil
	}
	return classifyOutboxRecord(outboxRec, targetTopic)
}

func classifyConsumerRecord(rec consumerDLQRecord, targetTopic string) (replayCandidate, bool, error) {
	original := []byte(rec.OriginalValue)

	var header orderEventHeader
	if err := json.Unmarshal(original, &header); err != nil {
		return replayCandidate{}, false, fmt.Errorf("original_value is not a json event: %w", err)
	}
	eventType, orderID, err := validateOrderEvent(header)
	if err != nil {
		return replayCandidate{}, false, err
	}

	topic := strings.TrimSpace(rec.OriginalTopic)
	if topic == "" {
		topic = targetTopic
	}
	key := rec.OriginalKey
	if key == "" {
		key = orderID
	}

	return replayCandidate{
		origin:    originConsumer,
		eventType: eventType,
		orderID:   orderID,
		topic:     topic,
		key:       key,
		value:     original,
	}, true, nil
}

func classifyOutboxRecord(rec outboxDLQRecord, targetTopic string) (replayCandidate, bool, error) {
	var dlqPayload outboxDLQPayload
	if err := json.Unmarshal(rec.Payload, &dlqPayload); err != nil {
		return replayCandidate{}, false, fmt.Errorf("decode outbox dlq payload: %w", err)
	}
	if len(dlqPayload.Payload) == 0 {
		return replayCandidate{}, false, fmt.Errorf("outbox dlq record does not carry the original event payload")
	}

	eventType, orderID, err := validateOrderEvent(orderEventHeader{
		EventType:   firstNonEmpty(dlqPayload.EventType, rec.EventType),
		AggregateID: firstNonEmpty(dlqPayload.AggregateID, rec.AggregateID),
	})
	if err != nil {
		return replayCandidate{}, false, err
	}

	// Восстанавливаем конверт в том виде, в каком его публикует
	// outbox-паблишер, со свежим published_at.
	envelope := struct {
		ID            string          `json:"id"`
		AggregateType string          `json:"aggregate_type"`
		AggregateID   string          `json:"aggregate_id"`
		EventType     string          `json:"event_type"`
		Payload       json.RawMessage `json:"payload"`
		PublishedAt   time.Time       `json:"published_at"`
	}{
		ID:            firstNonEmpty(dlqPayload.OutboxID, rec.ID),
		AggregateType: firstNonEmpty(dlqPayload.AggregateType, rec.AggregateType),
		AggregateID:   orderID,
		EventType:     eventType,
		Payload:       dlqPayload.Payload,
		PublishedAt:   time.Now().UTC(),
	}
	encoded, err := json.Marshal(envelope)
	if err != nil {
		return replayCandidate{}, false, fmt.Errorf("encode replay envelope: %w", err)
	}

	key := orderID
	if key == "" {
		key = envelope.ID
	}

	return replayCandidate{
		origin:    originOutbox,
		eventType: eventType,
		orderID:   orderID,
		topic:     targetTopic,
		key:       key,
		value:     encoded,
	}, true, nil
}

// validateOrderEvent проверяет, что из DLQ достали именно событие заказа.
func validateOrderEvent(header orderEventHeader) (eventType, orderID string, err error) {
	eventType = strings.TrimSpace(header.EventType)
	if eventType == "" {
		return "", "", fmt.Errorf("event has no event_type")
	}
	if _, ok := knownEventTypes[eventType]; !ok {
		return "", "", fmt.Errorf("unsupported event_type %q", eventType)
	}
	orderID = firstNonEmpty(header.OrderID, header.AggregateID)
	return eventType, orderID, nil
}

// matchesFilters применяет -event-type и -order-id.
func matchesFilters(cfg config, c replayCandidate) bool {
	if cfg.eventType != "" && c.eventType != cfg.eventType {
		return false
	}
	if cfg.orderID != "" && c.orderID != cfg.orderID {
		return false
	}
	return true
}

type dlqScanner interface {
	GetOffset(topic string, partition int32, time int64) (int64, error)
	Partitions(topic string) ([]int32, error)
	Close() error
}

type partitionConsumer interface {
	Messages() <-chan *sarama.ConsumerMessage
	Errors() <-chan *sarama.ConsumerError
	Close() error
}

type partitionSource interface {
	ConsumePartition(topic string, partition int32, offset int64) (partitionConsumer, error)
	Close() error
}

type replayProducer interface {
	SendMessage(msg *sarama.ProducerMessage) (partition int32, offset int64, err error)
	Close() error
}

type saramaPartitionSource struct {
	consumer sarama.Consumer
}

func (s saramaPartitionSource) ConsumePartition(topic string, partition int32, offset int64) (partitionConsumer, error) {
	pc, err := s.consumer.ConsumePartition(topic, partition, offset)
	if err != nil {
		return nil, err
	}
	return pc, nil
}

func (s saramaPartitionSource) Close() error {
	if s.consumer == nil {
		return nil
	}
	return s.consumer.Close()
}

var newReplayDependencies = func(cfg config) (dlqScanner, partitionSource, replayProducer, error) {
	consumerConfig := sarama.NewConfig()
	consumerConfig.Consumer.Return.Errors = true

	client, err := sarama.NewClient(cfg.brokers, consumerConfig)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create kafka client: %w", err)
	}

	rawConsumer, err := sarama.NewConsumerFromClient(client)
	if err != nil {
		_ = client.Close()
		return nil, nil, nil, fmt.Errorf("create kafka consumer: %w", err)
	}
	source := saramaPartitionSource{consumer: rawConsumer}

	if !cfg.execute {
		return client, source, nil, nil
	}

	// Продюсер настраиваем так же, как основной producer сервиса:
	// идемпотентность и подтверждение от всех реплик.
	producerConfig := sarama.NewConfig()
	producerConfig.Producer.RequiredAcks = sarama.WaitForAll
	producerConfig.Producer.Retry.Max = 5
	producerConfig.Producer.Return.Successes = true
	producerConfig.Producer.Compression = sarama.CompressionSnappy
	producerConfig.Producer.Idempotent = true
	producerConfig.Net.MaxOpenRequests = 1

	producer, err := sarama.NewSyncProducer(cfg.brokers, producerConfig)
	if err != nil {
		_ = source.Close()
		_ = client.Close()
		return nil, nil, nil, fmt.Errorf("create kafka producer: %w", err)
	}

	return client, source, producer, nil
}

func run(ctx context.Context, cfg config) error {
	log.WithFields(log.Fields{
		"source_topic": cfg.sourceTopic,
		"target_topic": cfg.targetTopic,
		"event_type":   cfg.eventType,
		"order_id":     cfg.orderID,
		"limit":        cfg.limit,
		"execute":      cfg.execute,
		"from_newest":  cfg.fromNewest,
	}).Info("starting dlq replay")

	scanner, source, producer, err := newReplayDependencies(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if producer != nil {
			_ = producer.Close()
		}
		if source != nil {
			_ = source.Close()
		}
		if scanner != nil {
			_ = scanner.Close()
		}
	}()

	return runReplay(ctx, cfg, scanner, source, producer)
}

func runReplay(ctx context.Context, cfg config, scanner dlqScanner, source partitionSource, producer replayProducer) error {
	if scanner == nil || source == nil {
		return fmt.Errorf("kafka client and consumer are required")
	}
	if cfg.execute && producer == nil {
		return fmt.Errorf("producer is required in execute mode")
	}

	partitions, err := scanner.Partitions(cfg.sourceTopic)
	if err != nil {
		return fmt.Errorf("get partitions for topic %s: %w", cfg.sourceTopic, err)
	}
	if len(partitions) == 0 {
		log.WithField("topic", cfg.sourceTopic).Warn("source topic has no partitions")
		return nil
	}
	sort.Slice(partitions, func(i, j int) bool { return partitions[i] < partitions[j] })

	total := newReplayStats()
	for _, partition := range partitions {
		if total.processed >= cfg.limit {
			break
		}

		stats, err := scanPartition(ctx, cfg, scanner, source, producer, partition, cfg.limit-total.processed)
		if err != nil {
			return err
		}
		total.merge(stats)
	}

	mode := "dry-run"
	if cfg.execute {
		mode = "execute"
	}

	fields := log.Fields{
		"mode":      mode,
		"processed": total.processed,
		"replayed":  total.replayed,
		"skipped":   total.skipped,
	}
	for eventType, count := range total.byType {
		fields["replayed."+eventType] = count
	}
	for origin, count := range total.byOrigin {
		fields["origin."+origin] = count
	}
	log.WithFields(fields).Info("dlq replay finished")

	return nil
}

func scanPartition(
	ctx context.Context,
	cfg config,
	scanner dlqScanner,
	source partitionSource,
	producer replayProducer,
	partition int32,
	limit int,
) (*replayStats, error) {
	stats := newReplayStats()
	if limit <= 0 {
		return stats, nil
	}

	oldest, err := scanner.GetOffset(cfg.sourceTopic, partition, sarama.OffsetOldest)
	if err != nil {
		return stats, fmt.Errorf("get oldest offset for partition %d: %w", partition, err)
	}
	newest, err := scanner.GetOffset(cfg.sourceTopic, partition, sarama.OffsetNewest)
	if err != nil {
		return stats, fmt.Errorf("get newest offset for partition %d: %w", partition, err)
	}
	if newest <= oldest {
		return stats, nil
	}

	startOffset := oldest
	if cfg.fromNewest {
		startOffset = newest - int64(limit)
		if startOffset < oldest {
			startOffset = oldest
		}
	}

	pc, err := source.ConsumePartition(cfg.sourceTopic, partition, startOffset)
	if err != nil {
		return stats, fmt.Errorf("consume partition %d: %w", partition, err)
	}
	defer func() { _ = pc.Close() }()

	idleTimer := time.NewTimer(cfg.idleTimeout)
	defer idleTimer.Stop()

	for stats.processed < limit {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		case err := <-pc.Errors():
			if err != nil {
				return stats, fmt.Errorf("partition %d consumer error: %w", partition, err)
			}
		case msg, ok := <-pc.Messages():
			if !ok || msg == nil {
				return stats, nil
			}

			if !idleTimer.Stop() {
				select {
				case <-idleTimer.C:
				default:
				}
			}
			idleTimer.Reset(cfg.idleTimeout)

			if msg.Offset >= newest {
				return stats, nil
			}

			if err := handleMessage(cfg, producer, msg, stats); err != nil {
				return stats, err
			}

			if msg.Offset+1 >= newest {
				return stats, nil
			}
		case <-idleTimer.C:
			return stats, nil
		}
	}

	return stats, nil
}

func handleMessage(cfg config, producer replayProducer, msg *sarama.ConsumerMessage, stats *replayStats) error {
	stats.processed++

	candidate, ok, err := classifyDLQMessage(msg.Value, cfg.targetTopic)
	if err != nil {
		stats.skipped++
		log.WithError(err).WithFields(log.Fields{
			"partition": msg.Partition,
			"offset":    msg.Offset,
		}).Warn("skip unsupported dlq message")
		return nil
	}
	if !ok || !matchesFilters(cfg, candidate) {
		stats.skipped++
		return nil
	}

	if cfg.execute {
		if err := publishReplay(producer, candidate); err != nil {
			return fmt.Errorf("publish replay message: %w", err)
		}
	} else {
		log.WithFields(log.Fields{
			"partition":    msg.Partition,
			"offset":       msg.Offset,
			"origin":       candidate.origin,
			"event_type":   candidate.eventType,
			"order_id":     candidate.orderID,
			"target_topic": candidate.topic,
		}).Info("dlq replay candidate")
	}
	stats.countReplay(candidate)

	return nil
}

func publishReplay(producer replayProducer, c replayCandidate) error {
	if producer == nil {
		return fmt.Errorf("producer is nil")
	}

	_, _, err := producer.SendMessage(&sarama.ProducerMessage{
		Topic:     c.topic,
		Key:       sarama.StringEncoder(c.key),
		Value:     sarama.ByteEncoder(c.value),
		Timestamp: time.Now().UTC(),
	})
	return err
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func fail(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
