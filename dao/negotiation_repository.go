package dao

import (
	"context"
	"database/sql"

	"autonego-backend/model"
)

type NegotiationRepository struct {
	db *sql.DB
}

func NewNegotiationRepository(db *sql.DB) *NegotiationRepository {
	return &NegotiationRepository{db: db}
}

const negotiationColumns = `id, listing_id, buyer_name, buyer_email, buyer_contact,
	current_offer, last_counter, agreed_price, rounds, bottom_quoted,
	status, contact_collected, created_at, updated_at`

func (r *NegotiationRepository) Insert(ctx context.Context, n *model.Negotiation) error {
	query := `INSERT INTO negotiations (` + negotiationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		n.ID, n.ListingID, n.BuyerName, n.BuyerEmail, n.BuyerContact,
		n.CurrentOffer, n.LastCounter, n.AgreedPrice, n.Rounds, n.BottomQuoted,
		n.Status, n.ContactCollected, n.CreatedAt, n.UpdatedAt)
	return err
}

func (r *NegotiationRepository) GetByID(ctx context.Context, id string) (*model.Negotiation, error) {
	query := `SELECT ` + negotiationColumns + ` FROM negotiations WHERE id = ?`
	n, err := scanNegotiation(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil // Not found
	}
	return n, err
}

// Update persists the negotiation state after a turn. Transcript rows are
// written separately and are append-only.
func (r *NegotiationRepository) Update(ctx context.Context, n *model.Negotiation) error {
	query := `UPDATE negotiations SET
		buyer_name = ?, buyer_email = ?, buyer_contact = ?,
		current_offer = ?, last_counter = ?, agreed_price = ?, rounds = ?,
		bottom_quoted = ?, status = ?, contact_collected = ?, updated_at = NOW()
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		n.BuyerName, n.BuyerEmail, n.BuyerContact,
		n.CurrentOffer, n.LastCounter, n.AgreedPrice, n.Rounds,
		n.BottomQuoted, n.Status, n.ContactCollected, n.ID)
	return err
}

func (r *NegotiationRepository) ListByListing(ctx context.Context, listingID string) ([]model.Negotiation, error) {
	query := `SELECT ` + negotiationColumns + ` FROM negotiations WHERE listing_id = ? ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var negotiations []model.Negotiation
	for rows.Next() {
		n, err := scanNegotiation(rows)
		if err != nil {
			return nil, err
		}
		negotiations = append(negotiations, *n)
	}
	return negotiations, rows.Err()
}

func (r *NegotiationRepository) AppendTurn(ctx context.Context, t *model.ChatTurn) error {
	query := `INSERT INTO chat_turns (id, negotiation_id, sender, message, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, t.ID, t.NegotiationID, t.Sender, t.Message, t.CreatedAt)
	return err
}

func (r *NegotiationRepository) GetTurns(ctx context.Context, negotiationID string) ([]model.ChatTurn, error) {
	query := `SELECT id, negotiation_id, sender, message, created_at
		FROM chat_turns WHERE negotiation_id = ? ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, negotiationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []model.ChatTurn
	for rows.Next() {
		var t model.ChatTurn
		if err := rows.Scan(&t.ID, &t.NegotiationID, &t.Sender, &t.Message, &t.CreatedAt); err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

func (r *NegotiationRepository) InsertLog(ctx context.Context, l *model.NegotiationLog) error {
	query := `INSERT INTO negotiation_logs (id, negotiation_id, proposed_price, decision, counter_price, log_time)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		l.ID, l.NegotiationID, l.ProposedPrice, l.Decision, l.CounterPrice, l.LogTime)
	return err
}

// AcceptExclusive performs the seller-accept cascade in one transaction: it
// locks the listing row, accepts the negotiation, marks the listing sold and
// inactive, and rejects every other pending negotiation on the same listing.
// The lock scope is exactly one listing, so a concurrent accept on a second
// negotiation observes is_sold and fails with ErrAlreadySold.
func (r *NegotiationRepository) AcceptExclusive(ctx context.Context, negotiationID, sellerID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var listingID, status string
	err = tx.QueryRowContext(ctx,
		`SELECT listing_id, status FROM negotiations WHERE id = ? FOR UPDATE`,
		negotiationID).Scan(&listingID, &status)
	if err == sql.ErrNoRows {
		return model.ErrNegotiationNotFound
	}
	if err != nil {
		return err
	}

	var ownerID string
	var isActive, isSold bool
	err = tx.QueryRowContext(ctx,
		`SELECT seller_id, is_active, is_sold FROM listings WHERE id = ? FOR UPDATE`,
		listingID).Scan(&ownerID, &isActive, &isSold)
	if err == sql.ErrNoRows {
		return model.ErrListingNotFound
	}
	if err != nil {
		return err
	}

	if ownerID != sellerID {
		return model.ErrNotOwner
	}
	if isSold {
		return model.ErrAlreadySold
	}
	if status != model.NegotiationPending {
		return model.ErrAlreadyTerminal
	}
	if !isActive {
		return model.ErrListingUnavailable
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE negotiations SET status = ?, updated_at = NOW() WHERE id = ?`,
		model.NegotiationAccepted, negotiationID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE listings SET is_sold = TRUE, is_active = FALSE, updated_at = NOW() WHERE id = ?`,
		listingID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE negotiations SET status = ?, updated_at = NOW() WHERE listing_id = ? AND id <> ? AND status = ?`,
		model.NegotiationRejected, listingID, negotiationID, model.NegotiationPending); err != nil {
		return err
	}

	return tx.Commit()
}

// Reject closes one negotiation without touching the listing or its
// siblings; the listing stays open for other buyers.
func (r *NegotiationRepository) Reject(ctx context.Context, negotiationID, sellerID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var listingID, status string
	err = tx.QueryRowContext(ctx,
		`SELECT listing_id, status FROM negotiations WHERE id = ? FOR UPDATE`,
		negotiationID).Scan(&listingID, &status)
	if err == sql.ErrNoRows {
		return model.ErrNegotiationNotFound
	}
	if err != nil {
		return err
	}

	var ownerID string
	err = tx.QueryRowContext(ctx,
		`SELECT seller_id FROM listings WHERE id = ?`, listingID).Scan(&ownerID)
	if err != nil {
		return err
	}
	if ownerID != sellerID {
		return model.ErrNotOwner
	}
	if status != model.NegotiationPending {
		return model.ErrAlreadyTerminal
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE negotiations SET status = ?, updated_at = NOW() WHERE id = ?`,
		model.NegotiationRejected, negotiationID); err != nil {
		return err
	}
	return tx.Commit()
}

func scanNegotiation(row rowScanner) (*model.Negotiation, error) {
	var n model.Negotiation
	var offer, counter, agreed sql.NullInt64
	if err := row.Scan(&n.ID, &n.ListingID, &n.BuyerName, &n.BuyerEmail, &n.BuyerContact,
		&offer, &counter, &agreed, &n.Rounds, &n.BottomQuoted,
		&n.Status, &n.ContactCollected, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	n.CurrentOffer = offer.Int64
	n.LastCounter = counter.Int64
	n.AgreedPrice = agreed.Int64
	return &n, nil
}
