package models

import (
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// DeletionAction decides what happens to transactions that reference a
// resource when the resource is deleted.
//
// Not every action is available for every resource:
//
//   - Accounts only support deleteAll. An account without its transaction
//     history is not a meaningful state, deleting an account is always
//     destructive to its transactions.
//   - Groups support setNull and deleteAll. Categorization is a soft
//     classification, detaching keeps the transactions and only clears
//     their group and category references.
//   - Currencies always detach and never expose an action. The monetary
//     facts must survive a change of the currency taxonomy, only the
//     currency tag is dropped.
type DeletionAction string

const (
	DeletionUnspecified DeletionAction = ""
	DeletionCancel      DeletionAction = "cancel"
	DeletionSetNull     DeletionAction = "setNull"
	DeletionDeleteAll   DeletionAction = "deleteAll"
)

// ParseDeletionAction parses the action from its query parameter
// representation. An empty string is valid and means that no explicit
// decision has been made yet.
func ParseDeletionAction(s string) (DeletionAction, error) {
	switch DeletionAction(s) {
	case DeletionUnspecified, DeletionCancel, DeletionSetNull, DeletionDeleteAll:
		return DeletionAction(s), nil
	}

	return DeletionUnspecified, ErrDeletionActionInvalid
}

// deletionCapabilities is the capability table for the deletion actions,
// keyed by resource table name. cancel and an unspecified action are always
// acceptable and not listed.
var deletionCapabilities = map[string][]DeletionAction{
	"accounts": {DeletionDeleteAll},
	"groups":   {DeletionSetNull, DeletionDeleteAll},
}

func (action DeletionAction) allowedFor(table string) bool {
	return slices.Contains(deletionCapabilities[table], action)
}

// Resolve executes the deletion request for the account.
//
// The only destructive action for accounts is deleteAll: every transaction
// referencing the account is deleted, then the currency associations, then
// the account itself. When transactions reference the account, the caller
// has to request this explicitly, a delete without an action is refused.
//
// The dependent transactions are re-derived inside a single database
// transaction, so the mutation sequence is atomic and does not race with
// concurrent inserts.
func (a Account) Resolve(db *gorm.DB, action DeletionAction) error {
	if action == DeletionCancel {
		return nil
	}

	if action != DeletionUnspecified && !action.allowedFor("accounts") {
		return ErrDeletionActionNotAllowed
	}

	return db.Transaction(func(tx *gorm.DB) error {
		count, err := a.TransactionCount(tx)
		if err != nil {
			return err
		}

		if action == DeletionUnspecified && count > 0 {
			return ErrDeletionNeedsConfirmation
		}

		// Resolved deletions are permanent. A soft deleted row would still
		// occupy the unique name index and block re-creation
		err = tx.Unscoped().Where("account_id = ?", a.ID).Delete(&Transaction{}).Error
		if err != nil {
			return err
		}

		err = tx.Model(&a).Association("Currencies").Clear()
		if err != nil {
			return err
		}

		return tx.Unscoped().Delete(&a).Error
	})
}

// Resolve executes the deletion request for the group.
//
// setNull detaches: the group and category references of all transactions
// referencing the group are cleared, then categories no remaining
// transaction references are deleted, then the group. deleteAll cascades:
// the transactions are deleted together with all categories of the group.
// When transactions reference the group, the caller has to pick one of the
// two, a delete without an action is refused.
func (g Group) Resolve(db *gorm.DB, action DeletionAction) error {
	if action == DeletionCancel {
		return nil
	}

	if action != DeletionUnspecified && !action.allowedFor("groups") {
		return ErrDeletionActionNotAllowed
	}

	return db.Transaction(func(tx *gorm.DB) error {
		count, err := g.TransactionCount(tx)
		if err != nil {
			return err
		}

		if action == DeletionUnspecified {
			if count > 0 {
				return ErrDeletionNeedsConfirmation
			}

			// Without dependent transactions both actions collapse into
			// removing the group with its categories
			action = DeletionDeleteAll
		}

		if action == DeletionSetNull {
			return g.detachDependents(tx)
		}

		return g.cascadeDependents(tx)
	})
}

// detachDependents clears the group and category references of all
// transactions referencing the group, both uniformly: removing a group
// fully declassifies its transactions, even when a category row survives
// because transactions outside the group still reference it.
func (g Group) detachDependents(tx *gorm.DB) error {
	err := tx.Model(&Transaction{}).
		Where("group_id = ?", g.ID).
		Updates(map[string]interface{}{"group_id": nil, "category_id": nil}).Error
	if err != nil {
		return err
	}

	var categories []Category
	err = tx.Where("group_id = ?", g.ID).Find(&categories).Error
	if err != nil {
		return err
	}

	for _, category := range categories {
		inUse, err := category.InUse(tx)
		if err != nil {
			return err
		}

		// Surviving categories lose their group reference, the group is
		// about to be deleted
		if inUse {
			err = tx.Model(&category).Update("group_id", nil).Error
			if err != nil {
				return err
			}

			continue
		}

		err = tx.Unscoped().Delete(&category).Error
		if err != nil {
			return err
		}
	}

	return tx.Unscoped().Delete(&g).Error
}

// cascadeDependents deletes all transactions referencing the group, then all
// categories of the group, then the group itself. Transactions that
// reference one of the group's categories without referencing the group
// would be left dangling, their category reference is cleared.
func (g Group) cascadeDependents(tx *gorm.DB) error {
	err := tx.Unscoped().Where("group_id = ?", g.ID).Delete(&Transaction{}).Error
	if err != nil {
		return err
	}

	categoryIDs := tx.Model(&Category{}).Select("id").Where("group_id = ?", g.ID)
	err = tx.Model(&Transaction{}).
		Where("category_id IN (?)", categoryIDs).
		Update("category_id", nil).Error
	if err != nil {
		return err
	}

	err = tx.Unscoped().Where("group_id = ?", g.ID).Delete(&Category{}).Error
	if err != nil {
		return err
	}

	return tx.Unscoped().Delete(&g).Error
}

// Resolve executes the deletion request for the currency.
//
// Transactions are never deleted with their currency. The currency reference
// of all transactions is cleared, the account associations are removed and
// the currency itself is deleted, all in one database transaction.
func (c Currency) Resolve(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&Transaction{}).
			Where("currency_id = ?", c.ID).
			Update("currency_id", nil).Error
		if err != nil {
			return err
		}

		err = tx.Model(&c).Association("Accounts").Clear()
		if err != nil {
			return err
		}

		return tx.Unscoped().Delete(&c).Error
	})
}
