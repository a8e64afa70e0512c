// Package treasury mueve dinero entre cajas fuera de las ventas: ajustes manuales,
// depósitos y retiros de fondo circulante, y traslados entre cajas.
package treasury

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/kitob-pos/internal/application/dto"
	"github.com/jhoicas/kitob-pos/internal/application/ledger"
	"github.com/jhoicas/kitob-pos/internal/application/ports"
	"github.com/jhoicas/kitob-pos/internal/domain"
	"github.com/jhoicas/kitob-pos/internal/domain/entity"
	"github.com/jhoicas/kitob-pos/pkg/logger"
	"github.com/shopspring/decimal"
)

// TreasuryUseCase operaciones de caja; cada una es una transacción.
type TreasuryUseCase struct {
	tx      ports.TxRunner
	repos   ports.TxRepos
	balance *ledger.BalanceEngine
	log     *logger.Logger
	now     func() time.Time
}

// NewTreasuryUseCase construye el caso de uso.
func NewTreasuryUseCase(tx ports.TxRunner, repos ports.TxRepos, balance *ledger.BalanceEngine, log *logger.Logger) *TreasuryUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &TreasuryUseCase{tx: tx, repos: repos, balance: balance, log: log.Component("treasury"), now: time.Now}
}

// CreateRegister da de alta la caja en 0 y, si hay saldo inicial, lo aplica con el motor de saldo
// como ajuste en la misma transacción. Así la bitácora reproduce el saldo desde el primer movimiento.
func (uc *TreasuryUseCase) CreateRegister(ctx context.Context, userID string, in dto.CreateCashRegisterRequest) (*dto.CashRegisterResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	now := uc.now()
	reg := &entity.CashRegister{
		ID:         uuid.New().String(),
		Name:       in.Name,
		BranchID:   in.BranchID,
		CurrencyID: in.CurrencyID,
		Balance:    decimal.Zero,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	var created *entity.CashRegister
	err := uc.tx.Run(ctx, func(ctx context.Context, repos ports.TxRepos) error {
		if err := repos.Registers.Create(ctx, reg); err != nil {
			return err
		}
		if !in.OpeningBalance.IsZero() {
			if _, err := uc.balance.ApplyBalanceDelta(ctx, repos, ledger.BalanceDelta{
				RegisterID:    reg.ID,
				UserID:        userID,
				Delta:         in.OpeningBalance,
				ReferenceType: entity.ReferenceAdjustment,
				Note:          "Opening balance",
			}); err != nil {
				return err
			}
		}
		var err error
		created, err = repos.Registers.GetByID(ctx, reg.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("register_id", created.ID).
		Str("currency_id", created.CurrencyID).
		Str("opening_balance", in.OpeningBalance.String()).
		Msg("caja creada")
	return toRegisterResponse(created), nil
}

// ListRegisters cajas de la sucursal; vacío = todas.
func (uc *TreasuryUseCase) ListRegisters(ctx context.Context, branchID string) ([]dto.CashRegisterResponse, error) {
	list, err := uc.repos.Registers.List(ctx, branchID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CashRegisterResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toRegisterResponse(r))
	}
	return out, nil
}

// AdjustBalance suma (o resta, si es negativo) el monto al saldo. No verifica suficiencia:
// el saldo puede quedar negativo.
func (uc *TreasuryUseCase) AdjustBalance(ctx context.Context, userID, registerID string, in dto.AdjustBalanceRequest) (*dto.CashRegisterResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	note := in.Note
	if note == "" {
		note = "Manual adjustment"
	}

	var reg *entity.CashRegister
	err := uc.tx.Run(ctx, func(ctx context.Context, repos ports.TxRepos) error {
		if _, err := uc.balance.ApplyBalanceDelta(ctx, repos, ledger.BalanceDelta{
			RegisterID:    registerID,
			UserID:        userID,
			Delta:         in.Amount,
			ReferenceType: entity.ReferenceAdjustment,
			Note:          note,
		}); err != nil {
			return err
		}
		var err error
		reg, err = repos.Registers.GetByID(ctx, registerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("register_id", registerID).Str("amount", in.Amount.String()).Msg("saldo ajustado")
	return toRegisterResponse(reg), nil
}

// Deposit registra un depósito de fondo circulante y lo suma al saldo.
func (uc *TreasuryUseCase) Deposit(ctx context.Context, userID string, in dto.FundRequest) (*dto.FundResponse, error) {
	return uc.fund(ctx, userID, entity.FundDeposit, in)
}

// Withdraw registra un retiro; falla con ErrInsufficientFunds si el saldo no alcanza.
func (uc *TreasuryUseCase) Withdraw(ctx context.Context, userID string, in dto.FundRequest) (*dto.FundResponse, error) {
	return uc.fund(ctx, userID, entity.FundWithdrawal, in)
}

func (uc *TreasuryUseCase) fund(ctx context.Context, userID, kind string, in dto.FundRequest) (*dto.FundResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	var (
		f     *entity.CirculatingFund
		after decimal.Decimal
	)
	err := uc.tx.Run(ctx, func(ctx context.Context, repos ports.TxRepos) error {
		reg, err := repos.Registers.GetForUpdate(ctx, in.CashRegisterID)
		if err != nil {
			return err
		}
		if reg == nil {
			return domain.NotFound("caja", in.CashRegisterID)
		}
		delta := in.Amount
		if kind == entity.FundWithdrawal {
			if reg.Balance.LessThan(in.Amount) {
				return domain.InsufficientFunds(reg.ID, reg.Balance, in.Amount)
			}
			delta = in.Amount.Neg()
		}

		f = &entity.CirculatingFund{
			ID:             uuid.New().String(),
			CashRegisterID: reg.ID,
			Type:           kind,
			Amount:         in.Amount,
			DepositorName:  in.DepositorName,
			Note:           in.Note,
			UserID:         userID,
			CreatedAt:      uc.now(),
		}
		if err := repos.Funds.Create(ctx, f); err != nil {
			return err
		}

		note := in.Note
		if note == "" {
			note = "Circulating fund " + kind + " #" + f.ID
		}
		after, err = uc.balance.ApplyBalanceDelta(ctx, repos, ledger.BalanceDelta{
			RegisterID:    reg.ID,
			UserID:        userID,
			Delta:         delta,
			ReferenceType: entity.ReferenceFund,
			ReferenceID:   f.ID,
			Note:          note,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("fund_id", f.ID).
		Str("register_id", f.CashRegisterID).
		Str("type", kind).
		Str("amount", f.Amount.String()).
		Msg("fondo circulante registrado")
	return toFundResponse(f, after), nil
}

// Transfer mueve el monto de una caja a otra en una sola transacción: OUTFLOW en origen,
// INFLOW en destino, ambos con referencia al mismo traslado.
func (uc *TreasuryUseCase) Transfer(ctx context.Context, userID string, in dto.TransferRequest) (*dto.TransferResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.FromRegisterID == in.ToRegisterID {
		return nil, domain.Invalid("la caja de origen y la de destino deben ser distintas")
	}

	var (
		t                 *entity.MoneyTransfer
		fromAfter, toAfter decimal.Decimal
	)
	err := uc.tx.Run(ctx, func(ctx context.Context, repos ports.TxRepos) error {
		// Bloqueo en orden de id para que dos traslados cruzados no se bloqueen mutuamente.
		first, second := in.FromRegisterID, in.ToRegisterID
		if second < first {
			first, second = second, first
		}
		locked := make(map[string]*entity.CashRegister, 2)
		for _, id := range []string{first, second} {
			reg, err := repos.Registers.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if reg == nil {
				return domain.NotFound("caja", id)
			}
			locked[id] = reg
		}
		from := locked[in.FromRegisterID]
		if from.Balance.LessThan(in.Amount) {
			return domain.InsufficientFunds(from.ID, from.Balance, in.Amount)
		}

		t = &entity.MoneyTransfer{
			ID:             uuid.New().String(),
			FromRegisterID: in.FromRegisterID,
			ToRegisterID:   in.ToRegisterID,
			UserID:         userID,
			Amount:         in.Amount,
			Note:           in.Note,
			CreatedAt:      uc.now(),
		}
		if err := repos.Transfers.Create(ctx, t); err != nil {
			return err
		}

		note := in.Note
		if note == "" {
			note = "Transfer #" + t.ID
		}
		var err error
		fromAfter, err = uc.balance.ApplyBalanceDelta(ctx, repos, ledger.BalanceDelta{
			RegisterID:    t.FromRegisterID,
			UserID:        userID,
			Delta:         in.Amount.Neg(),
			ReferenceType: entity.ReferenceTransfer,
			ReferenceID:   t.ID,
			Note:          note,
		})
		if err != nil {
			return err
		}
		toAfter, err = uc.balance.ApplyBalanceDelta(ctx, repos, ledger.BalanceDelta{
			RegisterID:    t.ToRegisterID,
			UserID:        userID,
			Delta:         in.Amount,
			ReferenceType: entity.ReferenceTransfer,
			ReferenceID:   t.ID,
			Note:          note,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("transfer_id", t.ID).
		Str("from_register_id", t.FromRegisterID).
		Str("to_register_id", t.ToRegisterID).
		Str("amount", t.Amount.String()).
		Msg("traslado registrado")
	return &dto.TransferResponse{
		ID:               t.ID,
		FromRegisterID:   t.FromRegisterID,
		ToRegisterID:     t.ToRegisterID,
		UserID:           t.UserID,
		Amount:           t.Amount,
		Note:             t.Note,
		FromBalanceAfter: fromAfter,
		ToBalanceAfter:   toAfter,
		CreatedAt:        t.CreatedAt,
	}, nil
}

// GetRegister devuelve la caja con su saldo actual.
func (uc *TreasuryUseCase) GetRegister(ctx context.Context, id string) (*dto.CashRegisterResponse, error) {
	reg, err := uc.repos.Registers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, domain.NotFound("caja", id)
	}
	return toRegisterResponse(reg), nil
}

// ListMovements bitácora de la caja en orden de inserción.
func (uc *TreasuryUseCase) ListMovements(ctx context.Context, registerID string, page dto.PageRequest) (*dto.FinancialMovementListResponse, error) {
	if err := dto.Validate(page); err != nil {
		return nil, err
	}
	page.DefaultPage()
	if _, err := uc.GetRegister(ctx, registerID); err != nil {
		return nil, err
	}
	list, err := uc.repos.FinancialMovements.ListByRegister(ctx, registerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.FinancialMovementListResponse{
		Items: toMovementResponses(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// GetTransfer devuelve el traslado con el OUTFLOW de origen y el INFLOW de destino que lo liquidaron.
func (uc *TreasuryUseCase) GetTransfer(ctx context.Context, id string) (*dto.TransferDetailResponse, error) {
	t, err := uc.repos.Transfers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.NotFound("traslado", id)
	}
	movs, err := uc.repos.FinancialMovements.ListByReference(ctx, entity.ReferenceTransfer, t.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.TransferDetailResponse{
		TransferResponse: toTransferResponse(t),
		Movements:        toMovementResponses(movs),
	}
	for _, m := range movs {
		switch m.CashRegisterID {
		case t.FromRegisterID:
			out.FromBalanceAfter = m.BalanceAfter
		case t.ToRegisterID:
			out.ToBalanceAfter = m.BalanceAfter
		}
	}
	return out, nil
}

func toMovementResponses(list []*entity.FinancialMovement) []dto.FinancialMovementResponse {
	items := make([]dto.FinancialMovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.FinancialMovementResponse{
			ID:             m.ID,
			CashRegisterID: m.CashRegisterID,
			CurrencyID:     m.CurrencyID,
			PaymentTypeID:  m.PaymentTypeID,
			UserID:         m.UserID,
			Type:           m.Type,
			Amount:         m.Amount,
			BalanceAfter:   m.BalanceAfter,
			ReferenceType:  m.ReferenceType,
			ReferenceID:    m.ReferenceID,
			Note:           m.Note,
			CreatedAt:      m.CreatedAt,
		})
	}
	return items
}

// ListFunds depósitos y retiros; registerID y fundType vacíos = sin filtro.
func (uc *TreasuryUseCase) ListFunds(ctx context.Context, registerID, fundType string) ([]dto.FundResponse, error) {
	switch fundType {
	case "", entity.FundDeposit, entity.FundWithdrawal:
	default:
		return nil, domain.Invalid("tipo de fondo %q inválido", fundType)
	}
	list, err := uc.repos.Funds.List(ctx, registerID, fundType)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FundResponse, 0, len(list))
	for _, f := range list {
		out = append(out, *toFundResponse(f, decimal.Zero))
	}
	return out, nil
}

// ListTransfers traslados, los más recientes primero.
func (uc *TreasuryUseCase) ListTransfers(ctx context.Context, page dto.PageRequest) ([]dto.TransferResponse, error) {
	if err := dto.Validate(page); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repos.Transfers.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTransferResponse(t))
	}
	return out, nil
}

func toTransferResponse(t *entity.MoneyTransfer) dto.TransferResponse {
	return dto.TransferResponse{
		ID:             t.ID,
		FromRegisterID: t.FromRegisterID,
		ToRegisterID:   t.ToRegisterID,
		UserID:         t.UserID,
		Amount:         t.Amount,
		Note:           t.Note,
		CreatedAt:      t.CreatedAt,
	}
}

func toRegisterResponse(r *entity.CashRegister) *dto.CashRegisterResponse {
	return &dto.CashRegisterResponse{
		ID:         r.ID,
		Name:       r.Name,
		BranchID:   r.BranchID,
		CurrencyID: r.CurrencyID,
		Balance:    r.Balance,
		IsActive:   r.IsActive,
		UpdatedAt:  r.UpdatedAt,
	}
}

func toFundResponse(f *entity.CirculatingFund, after decimal.Decimal) *dto.FundResponse {
	return &dto.FundResponse{
		ID:             f.ID,
		CashRegisterID: f.CashRegisterID,
		Type:           f.Type,
		Amount:         f.Amount,
		DepositorName:  f.DepositorName,
		Note:           f.Note,
		UserID:         f.UserID,
		BalanceAfter:   after,
		CreatedAt:      f.CreatedAt,
	}
}
