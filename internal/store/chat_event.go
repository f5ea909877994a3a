package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendChat(ctx context.Context, data ChatEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO chat_events
			(sequence, timestamp, request_id, channel, user_message, reply_type, shape, latency_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum,
		time.Now().UTC(),
		data.RequestID,
		data.Channel,
		data.UserMessage,
		data.ReplyType,
		data.Shape,
		data.LatencyMs,
	)
	if err != nil {
		return fmt.Errorf("save chat event: %w", err)
	}

	return nil
}

func (r *eventRepo) QueryChatEvents(ctx context.Context, opts QueryOpts) ([]ChatEvent, error) {
	query, args := buildEventQuery(
		`SELECT id, sequence, timestamp, request_id, channel, user_message, reply_type, shape, latency_ms
		 FROM chat_events`, opts)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query chat events: %w", err)
	}
	defer rows.Close()

	var events []ChatEvent
	for rows.Next() {
		var e ChatEvent
		if err := rows.Scan(
			&e.ID,
			&e.Sequence,
			&e.Timestamp,
			&e.RequestID,
			&e.Channel,
			&e.UserMessage,
			&e.ReplyType,
			&e.Shape,
			&e.LatencyMs,
		); err != nil {
			return nil, fmt.Errorf("scan chat event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
