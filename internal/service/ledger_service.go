package service

import (
	"context"
	"strconv"
	"time"

	"cryptoledger/internal/core/domain"
	"cryptoledger/internal/core/ports"
	"cryptoledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const dedupTTL = 24 * time.Hour

const defaultTransactionPageSize = 50

// Ledger implements ports.LedgerService for one asset. Every mutation runs
// through the serializable transactor; notification dispatch happens only
// after the commit, from the ChangeSet the transactor hands back.
type Ledger struct {
	asset       *Asset
	dedup       ports.DedupCache
	dispatcher  ports.EventDispatcher
	uniqueNames bool
	log         zerolog.Logger
}

// NewLedger creates the ledger service for an asset.
func NewLedger(asset *Asset, dedup ports.DedupCache, dispatcher ports.EventDispatcher, uniqueNames bool, log zerolog.Logger) *Ledger {
	return &Ledger{
		asset:       asset,
		dedup:       dedup,
		dispatcher:  dispatcher,
		uniqueNames: uniqueNames,
		log:         log,
	}
}

// CreateAccount creates a named account in the asset wallet. Duplicate
// names are rejected when the unique-names policy is on.
func (s *Ledger) CreateAccount(ctx context.Context, name string) (*domain.Account, error) {
	if name == "" {
		return nil, apperror.Validation("Account name must not be empty")
	}

	var account *domain.Account
	_, err := s.asset.Transactor.RunSerializable(ctx, func(ctx context.Context, tx pgx.Tx, _ *domain.ChangeSet) error {
		if s.uniqueNames {
			existing, err := s.asset.Accounts.GetByName(ctx, tx, s.asset.WalletID, name)
			if err != nil {
				return err
			}
			if existing != nil {
				return apperror.ErrDuplicateAccountName()
			}
		}
		now := time.Now().UTC()
		account = &domain.Account{ID: uuid.New(), WalletID: s.asset.WalletID, Name: name, CreatedAt: now, UpdatedAt: now}
		return s.asset.Accounts.Create(ctx, tx, account)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("account_id", account.ID.String()).Str("name", name).Msg("account created")
	return account, nil
}

// GetOrCreateAccount fetches the account by name, creating it on first use.
func (s *Ledger) GetOrCreateAccount(ctx context.Context, name string) (*domain.Account, error) {
	if name == "" {
		return nil, apperror.Validation("Account name must not be empty")
	}

	var account *domain.Account
	_, err := s.asset.Transactor.RunSerializable(ctx, func(ctx context.Context, tx pgx.Tx, _ *domain.ChangeSet) error {
		existing, err := s.asset.Accounts.GetByName(ctx, tx, s.asset.WalletID, name)
		if err != nil {
			return err
		}
		if existing != nil {
			account = existing
			return nil
		}
		now := time.Now().UTC()
		account = &domain.Account{ID: uuid.New(), WalletID: s.asset.WalletID, Name: name, CreatedAt: now, UpdatedAt: now}
		return s.asset.Accounts.Create(ctx, tx, account)
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// CreateReceivingAddress asks the backend for a fresh address and records
// it against the account. The backend call happens before any store
// transaction is open.
func (s *Ledger) CreateReceivingAddress(ctx context.Context, accountID uuid.UUID) (*domain.Address, error) {
	account, err := s.asset.Accounts.Get(ctx, accountID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if account == nil {
		return nil, apperror.ErrNotFound("Account")
	}

	raw, err := s.asset.Backend.CreateAddress(ctx, account.Name)
	if err != nil {
		return nil, err
	}

	var address *domain.Address
	_, err = s.asset.Transactor.RunSerializable(ctx, func(ctx context.Context, tx pgx.Tx, _ *domain.ChangeSet) error {
		address = &domain.Address{
			ID:        uuid.New(),
			AccountID: accountID,
			WalletID:  s.asset.WalletID,
			Address:   raw,
			CreatedAt: time.Now().UTC(),
		}
		return s.asset.Addresses.Create(ctx, tx, address)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("account_id", accountID.String()).Str("address", raw).Msg("receiving address created")
	return address, nil
}

// Send moves funds from an account to a target address. When the address
// belongs to this wallet the transfer stays internal and never touches the
// network; otherwise the amount is reserved for external broadcast. The
// routing decision and the resulting movement commit atomically.
func (s *Ledger) Send(ctx context.Context, fromAccountID uuid.UUID, targetAddress string, amount int64, note string) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	var movement *domain.Transaction
	_, err := s.asset.Transactor.RunSerializable(ctx, func(ctx context.Context, tx pgx.Tx, changes *domain.ChangeSet) error {
		addr, err := s.asset.Addresses.GetByAddress(ctx, tx, targetAddress)
		if err != nil {
			return err
		}

		if addr != nil && addr.WalletID == s.asset.WalletID {
			movement, err = s.transferInternal(ctx, tx, fromAccountID, addr.AccountID, amount, note)
			return err
		}
		movement, err = s.reserveExternal(ctx, tx, fromAccountID, targetAddress, amount, note)
		return err
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// SendInternal moves funds between two accounts of the wallet without any
// network traffic.
func (s *Ledger) SendInternal(ctx context.Context, fromAccountID, toAccountID uuid.UUID, amount int64, note string) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if fromAccountID == toAccountID {
		return nil, apperror.ErrSameAccount()
	}

	var movement *domain.Transaction
	_, err := s.asset.Transactor.RunSerializable(ctx, func(ctx context.Context, tx pgx.Tx, _ *domain.ChangeSet) error {
		var err error
		movement, err = s.transferInternal(ctx, tx, fromAccountID, toAccountID, amount, note)
		return err
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// SendExternal reserves funds for an external transfer. No network I/O
// happens here; the broadcaster picks the reservation up later.
func (s *Ledger) SendExternal(ctx context.Context, fromAccountID uuid.UUID, targetAddress string, amount int64, note string) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if targetAddress == "" {
		return nil, apperror.Validation("Target address must not be empty")
	}

	var movement *domain.Transaction
	_, err := s.asset.Transactor.RunSerializable(ctx, func(ctx context.Context, tx pgx.Tx, _ *domain.ChangeSet) error {
		var err error
		movement, err = s.reserveExternal(ctx, tx, fromAccountID, targetAddress, amount, note)
		return err
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

func (s *Ledger) transferInternal(ctx context.Context, tx pgx.Tx, from, to uuid.UUID, amount int64, note string) (*domain.Transaction, error) {
	if from == to {
		return nil, apperror.ErrSameAccount()
	}

	target, err := s.asset.Accounts.GetByID(ctx, tx, to)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, apperror.ErrNotFound("Receiving account")
	}

	newBalance, err := s.asset.Accounts.AdjustBalance(ctx, tx, from, -amount)
	if err != nil {
		return nil, err
	}
	if newBalance < 0 {
		return nil, apperror.ErrInsufficientFunds()
	}
	if _, err := s.asset.Accounts.AdjustBalance(ctx, tx, to, amount); err != nil {
		return nil, err
	}

	movement := &domain.Transaction{
		ID:              uuid.New(),
		WalletID:        s.asset.WalletID,
		Type:            domain.TransactionTypeInternal,
		Amount:          amount,
		DebitAccountID:  &from,
		CreditAccountID: &to,
		Note:            note,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.asset.Transactions.Create(ctx, tx, movement); err != nil {
		return nil, err
	}
	return movement, nil
}

func (s *Ledger) reserveExternal(ctx context.Context, tx pgx.Tx, from uuid.UUID, targetAddress string, amount int64, note string) (*domain.Transaction, error) {
	newBalance, err := s.asset.Accounts.AdjustBalance(ctx, tx, from, -amount)
	if err != nil {
		return nil, err
	}
	if newBalance < 0 {
		return nil, apperror.ErrInsufficientFunds()
	}
	if err := s.asset.Wallets.AdjustBalance(ctx, tx, s.asset.WalletID, -amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	ntx := &domain.NetworkTransaction{
		ID:            uuid.New(),
		WalletID:      s.asset.WalletID,
		Direction:     domain.DirectionOutgoing,
		TargetAddress: targetAddress,
		Amount:        amount,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.asset.NetworkTxs.Create(ctx, tx, ntx); err != nil {
		return nil, err
	}

	movement := &domain.Transaction{
		ID:                   uuid.New(),
		WalletID:             s.asset.WalletID,
		Type:                 domain.TransactionTypeExternal,
		Amount:               amount,
		DebitAccountID:       &from,
		NetworkTransactionID: &ntx.ID,
		Note:                 note,
		CreatedAt:            now,
	}
	if err := s.asset.Transactions.Create(ctx, tx, movement); err != nil {
		return nil, err
	}
	return movement, nil
}

// CreditDeposit records one observation of an inbound transfer. The pair
// (address, txid) is the idempotency key: the first observation credits the
// account and the wallet, later ones only advance the confirmation count,
// monotonically. Safe to call any number of times from the notification
// endpoint and from rescans.
func (s *Ledger) CreditDeposit(ctx context.Context, notice ports.DepositNotice) (*domain.NetworkTransaction, error) {
	if notice.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if notice.Address == "" || notice.TxID == "" {
		return nil, apperror.Validation("Deposit notice requires address and txid")
	}

	// Fast path: drop observations we have already processed for this
	// confirmation count. The key is marked only after a successful
	// commit, so a failed credit stays retryable. Cache errors fall
	// through to the store.
	dedupKey := notice.Address + ":" + notice.TxID + ":" + strconv.Itoa(notice.Confirmations)
	if s.dedup != nil {
		seen, err := s.dedup.Seen(ctx, dedupKey)
		if err != nil {
			s.log.Warn().Err(err).Msg("dedup cache unavailable, falling through to store")
		} else if seen {
			s.log.Debug().Str("txid", notice.TxID).Int("confirmations", notice.Confirmations).Msg("duplicate deposit notice absorbed")
			return nil, nil
		}
	}

	var ntx *domain.NetworkTransaction
	changes, err := s.asset.Transactor.RunSerializable(ctx, func(ctx context.Context, tx pgx.Tx, changes *domain.ChangeSet) error {
		addr, err := s.asset.Addresses.GetByAddress(ctx, tx, notice.Address)
		if err != nil {
			return err
		}
		if addr == nil || addr.WalletID != s.asset.WalletID {
			return apperror.ErrUnknownAddress(notice.Address)
		}

		existing, err := s.asset.NetworkTxs.GetIncoming(ctx, tx, notice.TxID, addr.ID)
		if err != nil {
			return err
		}

		terminal := notice.Confirmations >= s.asset.Threshold

		if existing == nil {
			now := time.Now().UTC()
			ntx = &domain.NetworkTransaction{
				ID:            uuid.New(),
				WalletID:      s.asset.WalletID,
				Direction:     domain.DirectionIncoming,
				TxID:          &notice.TxID,
				AddressID:     &addr.ID,
				Amount:        notice.Amount,
				Confirmations: notice.Confirmations,
				Terminal:      terminal,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := s.asset.NetworkTxs.Create(ctx, tx, ntx); err != nil {
				return err
			}

			if _, err := s.asset.Accounts.AdjustBalance(ctx, tx, addr.AccountID, notice.Amount); err != nil {
				return err
			}
			if err := s.asset.Wallets.AdjustBalance(ctx, tx, s.asset.WalletID, notice.Amount); err != nil {
				return err
			}
			if err := s.asset.Addresses.AddReceived(ctx, tx, addr.ID, notice.Amount); err != nil {
				return err
			}

			deposit := &domain.Transaction{
				ID:                   uuid.New(),
				WalletID:             s.asset.WalletID,
				Type:                 domain.TransactionTypeExternal,
				Amount:               notice.Amount,
				CreditAccountID:      &addr.AccountID,
				NetworkTransactionID: &ntx.ID,
				CreatedAt:            now,
			}
			if err := s.asset.Transactions.Create(ctx, tx, deposit); err != nil {
				return err
			}

			changes.Record(domain.Event{
				Type:          domain.EventDepositReceived,
				Asset:         s.asset.Name,
				WalletID:      s.asset.WalletID,
				AccountID:     &addr.AccountID,
				Address:       notice.Address,
				TxID:          notice.TxID,
				Amount:        notice.Amount,
				Confirmations: notice.Confirmations,
			})
			return nil
		}

		ntx = existing
		changed, err := s.asset.NetworkTxs.UpdateConfirmations(ctx, tx, existing.ID, notice.Confirmations, terminal)
		if err != nil {
			return err
		}
		if changed {
			ntx.Confirmations = notice.Confirmations
			ntx.Terminal = terminal
			changes.Record(domain.Event{
				Type:          domain.EventConfirmationUpdate,
				Asset:         s.asset.Name,
				WalletID:      s.asset.WalletID,
				AccountID:     &addr.AccountID,
				Address:       notice.Address,
				TxID:          notice.TxID,
				Amount:        existing.Amount,
				Confirmations: notice.Confirmations,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.dedup != nil {
		if err := s.dedup.Mark(ctx, dedupKey, dedupTTL); err != nil {
			s.log.Warn().Err(err).Msg("dedup cache mark failed, store idempotency covers redelivery")
		}
	}

	s.dispatch(ctx, changes)
	return ntx, nil
}

// MarkProcessed flags a ledger transaction as handled by the application,
// so restarts can tell handled deposits from unhandled ones.
func (s *Ledger) MarkProcessed(ctx context.Context, transactionID uuid.UUID) error {
	_, err := s.asset.Transactor.RunSerializable(ctx, func(ctx context.Context, tx pgx.Tx, _ *domain.ChangeSet) error {
		return s.asset.Transactions.MarkProcessed(ctx, tx, transactionID)
	})
	return err
}

// GetAccount fetches one account for display.
func (s *Ledger) GetAccount(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	account, err := s.asset.Accounts.Get(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if account == nil {
		return nil, apperror.ErrNotFound("Account")
	}
	return account, nil
}

// ListAccounts lists the wallet's accounts for display.
func (s *Ledger) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.asset.Accounts.List(ctx, s.asset.WalletID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return accounts, nil
}

// ListAccountTransactions pages through an account's ledger movements,
// newest first.
func (s *Ledger) ListAccountTransactions(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = defaultTransactionPageSize
	}
	txs, err := s.asset.Transactions.ListByAccount(ctx, accountID, limit, offset)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return txs, nil
}

func (s *Ledger) dispatch(ctx context.Context, changes *domain.ChangeSet) {
	if s.dispatcher == nil || changes == nil || changes.Empty() {
		return
	}
	s.dispatcher.Dispatch(ctx, changes)
}

var _ ports.LedgerService = (*Ledger)(nil)
