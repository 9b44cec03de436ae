// Package dialog implements the conversational ledger engine: a per-user
// state machine that interprets the next message or button press according
// to the user's pending "inputting status" and drives the contact directory
// and transfer ledger behind it.
package dialog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ravel57/grosze-bot/internal/domain"
	"github.com/ravel57/grosze-bot/internal/ledger"
)

type Command string

const (
	CommandStart    Command = "start"
	CommandMenu     Command = "menu"
	CommandDebts    Command = "debts"
	CommandContacts Command = "contacts"
)

type Engine struct {
	users     UserStore
	contacts  ContactStore
	transfers TransferStore
	log       *slog.Logger

	locks userLocks
}

func New(users UserStore, contacts ContactStore, transfers TransferStore, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{users: users, contacts: contacts, transfers: transfers, log: log}
}

// HandleCommand processes a slash command already parsed by the shell.
func (e *Engine) HandleCommand(ctx context.Context, telegramID int64, username string, cmd Command) ([]Reply, error) {
	unlock := e.locks.lock(telegramID)
	defer unlock()

	user, err := e.users.Upsert(ctx, telegramID, username)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	switch cmd {
	case CommandStart, CommandMenu:
		return e.menu(ctx, user)
	case CommandDebts:
		summary, err := e.balancesText(ctx, user)
		if err != nil {
			return nil, err
		}
		replies := []Reply{text(summary)}
		menu, err := e.menu(ctx, user)
		if err != nil {
			return nil, err
		}
		return append(replies, menu...), nil
	case CommandContacts:
		names, err := e.contactNames(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if len(names) == 0 {
			return []Reply{text("Контактов пока нет, добавь через /menu")}, nil
		}
		return []Reply{text("Твои контакты:\n" + strings.Join(names, "\n"))}, nil
	default:
		return []Reply{text("Не знаю такой команды, зайди в /menu")}, nil
	}
}

// HandleText processes free text according to the user's pending status.
func (e *Engine) HandleText(ctx context.Context, telegramID int64, username, msgText string) ([]Reply, error) {
	unlock := e.locks.lock(telegramID)
	defer unlock()

	user, err := e.users.Upsert(ctx, telegramID, username)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	msgText = strings.TrimSpace(msgText)

	switch user.Status {
	case domain.StatusNone:
		return []Reply{text("Никакого действия не выбрано, зайди в /menu")}, nil

	case domain.StatusNewContactHandle:
		return e.addContactByHandle(ctx, user, msgText)

	case domain.StatusNewContactName, domain.StatusEditContactName:
		return e.renameSelected(ctx, user, msgText)

	case domain.StatusTransferAmount:
		return e.recordTransfer(ctx, user, msgText)

	case domain.StatusSelectContact, domain.StatusSelectDirection, domain.StatusDeleteContact:
		return []Reply{text("Выбери вариант кнопкой или вернись в /menu")}, nil

	default:
		// Unknown status in the row, e.g. after a rollback. Reset and recover.
		e.log.Warn("unknown dialog status, resetting", "user_id", user.ID, "status", user.Status)
		return e.reset(ctx, user, "Что-то пошло не так, начнём заново")
	}
}

// HandleCallback processes a button press. The raw token is decoded once
// into an Action; unrecognized data becomes a visible reply, not a no-op.
func (e *Engine) HandleCallback(ctx context.Context, telegramID int64, username, data string) ([]Reply, error) {
	unlock := e.locks.lock(telegramID)
	defer unlock()

	user, err := e.users.Upsert(ctx, telegramID, username)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	action := ParseAction(data)
	switch action.Kind {
	case ActionAddContact:
		if err := e.users.ClearSelections(ctx, user.ID); err != nil {
			return nil, err
		}
		if err := e.users.SetStatus(ctx, user.ID, domain.StatusNewContactHandle); err != nil {
			return nil, err
		}
		return []Reply{edit("Пришли telegram username нового контакта")}, nil

	case ActionNewTransfer:
		return e.showContacts(ctx, user, domain.StatusSelectContact)

	case ActionEditContact:
		return e.showContacts(ctx, user, domain.StatusEditContactName)

	case ActionDeleteContact:
		return e.showContacts(ctx, user, domain.StatusDeleteContact)

	case ActionBalances:
		summary, err := e.balancesText(ctx, user)
		if err != nil {
			return nil, err
		}
		return []Reply{edit(summary)}, nil

	case ActionSelectContact:
		return e.selectContact(ctx, user, action.ContactName)

	case ActionDirectionGave, ActionDirectionTook:
		return e.selectDirection(ctx, user, action.Kind)

	case ActionDeleteYes:
		return e.deleteSelected(ctx, user)

	case ActionDeleteNo:
		return e.reset(ctx, user, "Ладно, не удаляю")

	case ActionHistory, ActionSettled:
		return []Reply{edit("В разработке")}, nil

	default:
		return []Reply{edit(fmt.Sprintf("Необработанное нажатие:\n%q", action.Raw))}, nil
	}
}

// --- transitions ---

func (e *Engine) addContactByHandle(ctx context.Context, user domain.User, handle string) ([]Reply, error) {
	handle = strings.TrimPrefix(handle, "@")
	target, err := e.users.ByUsername(ctx, handle)
	if errors.Is(err, domain.ErrNotFound) {
		// Stay in place: the user can retry with a corrected handle.
		return []Reply{text("Пользователь не найден\nСкорее всего он не зарегистрирован в боте или ошибка в имени\nПришли еще раз или перейди в /menu")}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup handle: %w", err)
	}

	if _, err := e.contacts.FindOrCreate(ctx, user.ID, target.ID); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	if err := e.users.SetSelectedContact(ctx, user.ID, target.ID); err != nil {
		return nil, err
	}
	if err := e.users.SetStatus(ctx, user.ID, domain.StatusNewContactName); err != nil {
		return nil, err
	}
	return []Reply{text("Пришли как ты хочешь подписать этот контакт")}, nil
}

func (e *Engine) renameSelected(ctx context.Context, user domain.User, name string) ([]Reply, error) {
	if user.SelectedContactID == nil {
		return e.reset(ctx, user, "Контакт не выбран, начни заново через /menu")
	}
	err := e.contacts.Rename(ctx, user.ID, *user.SelectedContactID, name)
	if errors.Is(err, domain.ErrNotFound) {
		return e.reset(ctx, user, "Такого контакта уже нет, начни заново через /menu")
	}
	if err != nil {
		return nil, fmt.Errorf("rename contact: %w", err)
	}
	return e.finish(ctx, user)
}

func (e *Engine) recordTransfer(ctx context.Context, user domain.User, amountText string) ([]Reply, error) {
	if user.SelectedContactID == nil || user.SelectedDirection == nil {
		return e.reset(ctx, user, "Не выбран контакт или направление, начни заново через /menu")
	}

	amount, err := domain.ParseAmount(amountText)
	if errors.Is(err, domain.ErrBadAmount) {
		// Hold the state: selection and direction stay pending for a retry.
		return []Reply{text("Ошибка парсинга суммы, пришли число, например 300 или 12.50")}, nil
	}
	if err != nil {
		return nil, err
	}

	from, to := user.ID, *user.SelectedContactID
	if *user.SelectedDirection == domain.DirectionTook {
		from, to = to, from
	}
	if _, err := e.transfers.Create(ctx, from, to, amount); err != nil {
		return nil, fmt.Errorf("record transfer: %w", err)
	}
	return e.finish(ctx, user)
}

func (e *Engine) selectContact(ctx context.Context, user domain.User, name string) ([]Reply, error) {
	// A contact button pressed outside any flow (a stale keyboard) must not
	// store a selection a later dialog could consume.
	switch user.Status {
	case domain.StatusSelectContact, domain.StatusEditContactName, domain.StatusDeleteContact:
	default:
		return []Reply{edit(fmt.Sprintf("Необработанное нажатие:\n%q", SelectContactToken(name)))}, nil
	}

	contactUserID, err := e.contacts.ResolveDisplayName(ctx, user.ID, name)
	if errors.Is(err, domain.ErrNotFound) {
		return e.reset(ctx, user, "Контакт не найден, начни заново через /menu")
	}
	if err != nil {
		return nil, fmt.Errorf("resolve contact: %w", err)
	}
	if err := e.users.SetSelectedContact(ctx, user.ID, contactUserID); err != nil {
		return nil, err
	}

	switch user.Status {
	case domain.StatusSelectContact:
		if err := e.users.SetStatus(ctx, user.ID, domain.StatusSelectDirection); err != nil {
			return nil, err
		}
		return []Reply{directionReply()}, nil
	case domain.StatusEditContactName:
		return []Reply{edit("Пришли новое имя или вернись в /menu для отмены")}, nil
	default: // StatusDeleteContact, checked above
		return []Reply{deleteConfirmReply(name)}, nil
	}
}

func (e *Engine) selectDirection(ctx context.Context, user domain.User, kind ActionKind) ([]Reply, error) {
	if user.Status != domain.StatusSelectDirection || user.SelectedContactID == nil {
		return e.reset(ctx, user, "Контакт не выбран, начни заново через /menu")
	}
	dir := domain.DirectionGave
	if kind == ActionDirectionTook {
		dir = domain.DirectionTook
	}
	if err := e.users.SetDirection(ctx, user.ID, dir); err != nil {
		return nil, err
	}
	if err := e.users.SetStatus(ctx, user.ID, domain.StatusTransferAmount); err != nil {
		return nil, err
	}
	return []Reply{edit("Пришли сумму или вернись в /menu для отмены")}, nil
}

func (e *Engine) deleteSelected(ctx context.Context, user domain.User) ([]Reply, error) {
	if user.Status != domain.StatusDeleteContact || user.SelectedContactID == nil {
		return e.reset(ctx, user, "Контакт не выбран, начни заново через /menu")
	}
	// Soft delete: the row stays for ledger integrity, it just drops out of
	// lists. Re-adding the same pair revives it.
	if err := e.contacts.Deactivate(ctx, user.ID, *user.SelectedContactID); err != nil {
		return nil, fmt.Errorf("deactivate contact: %w", err)
	}
	replies, err := e.reset(ctx, user, "Контакт удалён")
	if err != nil {
		return nil, err
	}
	menu, err := e.menu(ctx, user)
	if err != nil {
		return nil, err
	}
	return append(replies, menu...), nil
}

// --- helpers ---

func (e *Engine) showContacts(ctx context.Context, user domain.User, next domain.Status) ([]Reply, error) {
	names, err := e.contactNames(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return []Reply{edit("Контактов пока нет, сначала добавь контакт")}, nil
	}
	// A fresh flow starts clean: whatever a previous, abandoned flow
	// selected must not be consumable here.
	if err := e.users.ClearSelections(ctx, user.ID); err != nil {
		return nil, err
	}
	if err := e.users.SetStatus(ctx, user.ID, next); err != nil {
		return nil, err
	}
	return []Reply{{Text: "Выбери контакт:", Keyboard: contactsKeyboard(names), Edit: true}}, nil
}

func (e *Engine) contactNames(ctx context.Context, ownerID int64) ([]string, error) {
	contacts, err := e.contacts.ListForOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	names := make([]string, 0, len(contacts))
	for _, c := range contacts {
		names = append(names, c.DisplayName())
	}
	return names, nil
}

// balancesText renders the signed net per contact: positive means the user
// is owed, negative means the user owes.
func (e *Engine) balancesText(ctx context.Context, user domain.User) (string, error) {
	transfers, err := e.transfers.ListInvolving(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("list transfers: %w", err)
	}
	// Names come from all contact rows, deleted ones included: the ledger
	// outlives the contact.
	names, err := e.contacts.DisplayNames(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("contact names: %w", err)
	}

	balances := ledger.NetBalances(user.ID, transfers, names)
	if len(balances) == 0 {
		return "Долгов нет", nil
	}
	lines := make([]string, 0, len(balances))
	for _, b := range balances {
		lines = append(lines, fmt.Sprintf("%s: %s", b.Name, b.Amount))
	}
	return strings.Join(lines, "\n"), nil
}

// finish completes a flow: selections cleared, status back to rest, menu out.
func (e *Engine) finish(ctx context.Context, user domain.User) ([]Reply, error) {
	if err := e.users.ClearSelections(ctx, user.ID); err != nil {
		return nil, err
	}
	if err := e.users.SetStatus(ctx, user.ID, domain.StatusNone); err != nil {
		return nil, err
	}
	menu, err := e.menu(ctx, user)
	if err != nil {
		return nil, err
	}
	return append([]Reply{text("Готово")}, menu...), nil
}

// reset recovers from an inconsistent dialog: message out, state to rest.
func (e *Engine) reset(ctx context.Context, user domain.User, message string) ([]Reply, error) {
	if err := e.users.ClearSelections(ctx, user.ID); err != nil {
		return nil, err
	}
	if err := e.users.SetStatus(ctx, user.ID, domain.StatusNone); err != nil {
		return nil, err
	}
	return []Reply{text(message)}, nil
}

// menu is also a reset: opening it abandons whatever was pending.
func (e *Engine) menu(ctx context.Context, user domain.User) ([]Reply, error) {
	if err := e.users.ClearSelections(ctx, user.ID); err != nil {
		return nil, err
	}
	if err := e.users.SetStatus(ctx, user.ID, domain.StatusNone); err != nil {
		return nil, err
	}
	return []Reply{menuReply()}, nil
}
