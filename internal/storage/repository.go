// Package storage implements the SQLite repositories. They expose the same
// operations and sentinel errors as the JSON file stores so callers never
// care which backend is behind them.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"finanger/internal/core"
	"finanger/internal/store"
)

type SQLiteRepository struct {
	db           *sql.DB
	users        *UserRepo
	transactions *TransactionRepo
	goals        *GoalRepo
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:           db,
		users:        &UserRepo{db: db},
		transactions: &TransactionRepo{db: db},
		goals:        &GoalRepo{db: db},
	}, nil
}

func (r *SQLiteRepository) Users() *UserRepo               { return r.users }
func (r *SQLiteRepository) Transactions() *TransactionRepo { return r.transactions }
func (r *SQLiteRepository) Goals() *GoalRepo               { return r.goals }

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// UserRepo stores credential records. Username uniqueness is enforced
// case-insensitively, matching the JSON store's collision scan.
type UserRepo struct {
	db *sql.DB
}

const userColumns = "id, username, password, security_question, security_answer"

func scanUser(row interface{ Scan(...any) error }) (core.User, error) {
	var u core.User
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.SecurityQuestion, &u.SecurityAnswer)
	return u, err
}

func (r *UserRepo) All() ([]core.User, error) {
	rows, err := r.db.Query("SELECT " + userColumns + " FROM users ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []core.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepo) Append(u core.User) error {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM users WHERE username = ? COLLATE NOCASE", u.Username).Scan(&count)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return store.ErrUsernameTaken
	}

	_, err = r.db.Exec(
		"INSERT INTO users ("+userColumns+") VALUES (?, ?, ?, ?, ?)",
		u.ID, u.Username, u.Password, u.SecurityQuestion, u.SecurityAnswer,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) FindByUsername(name string) (core.User, error) {
	row := r.db.QueryRow("SELECT "+userColumns+" FROM users WHERE username = ? COLLATE NOCASE", name)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, store.ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("find user by username: %w", err)
	}
	return u, nil
}

func (r *UserRepo) FindByID(id string) (core.User, error) {
	row := r.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, store.ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

func (r *UserRepo) Update(oldName string, updated core.User) error {
	res, err := r.db.Exec(
		"UPDATE users SET id = ?, username = ?, password = ?, security_question = ?, security_answer = ? WHERE username = ? COLLATE NOCASE",
		updated.ID, updated.Username, updated.Password, updated.SecurityQuestion, updated.SecurityAnswer, oldName,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// TransactionRepo stores transactions per user. Records carry no visible id,
// all matching is structural, so duplicate checks and removals compare every
// field.
type TransactionRepo struct {
	db *sql.DB
}

const txColumns = "transaction_date, transaction_type, currency, amount, category, payment_method, description"

const txMatch = "user_id = ? AND transaction_date = ? AND transaction_type = ? AND currency = ? AND amount = ? AND category = ? AND payment_method = ? AND description = ?"

func txMatchArgs(userID string, t core.Transaction) []any {
	return []any{userID, t.Date, t.Type, t.Currency, t.Amount, t.Category, t.PaymentMethod, t.Description}
}

func (r *TransactionRepo) Load(userID string) ([]core.Transaction, error) {
	rows, err := r.db.Query("SELECT "+txColumns+" FROM transactions WHERE user_id = ? ORDER BY id", userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var t core.Transaction
		if err := rows.Scan(&t.Date, &t.Type, &t.Currency, &t.Amount, &t.Category, &t.PaymentMethod, &t.Description); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func (r *TransactionRepo) Add(userID string, t core.Transaction) error {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM transactions WHERE "+txMatch, txMatchArgs(userID, t)...).Scan(&count)
	if err != nil {
		return fmt.Errorf("check duplicate: %w", err)
	}
	if count > 0 {
		return store.ErrDuplicateTransaction
	}
	return r.insert(userID, t)
}

func (r *TransactionRepo) insert(userID string, t core.Transaction) error {
	_, err := r.db.Exec(
		"INSERT INTO transactions (user_id, "+txColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		userID, t.Date, t.Type, t.Currency, t.Amount, t.Category, t.PaymentMethod, t.Description,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// Replace swaps the user's whole set in one transaction.
func (r *TransactionRepo) Replace(userID string, txs []core.Transaction) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM transactions WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	for _, t := range txs {
		_, err := tx.Exec(
			"INSERT INTO transactions (user_id, "+txColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			userID, t.Date, t.Type, t.Currency, t.Amount, t.Category, t.PaymentMethod, t.Description,
		)
		if err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
	}
	return tx.Commit()
}

// Update removes the first structural match for old and inserts updated.
func (r *TransactionRepo) Update(userID string, old, updated core.Transaction) error {
	if err := r.Delete(userID, old); err != nil {
		return err
	}
	return r.insert(userID, updated)
}

// Delete removes the first structural match, lowest insertion id first.
func (r *TransactionRepo) Delete(userID string, t core.Transaction) error {
	res, err := r.db.Exec(
		"DELETE FROM transactions WHERE id = (SELECT id FROM transactions WHERE "+txMatch+" ORDER BY id LIMIT 1)",
		txMatchArgs(userID, t)...,
	)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// GoalRepo stores goals per user, matched by generated id only.
type GoalRepo struct {
	db *sql.DB
}

const goalColumns = "id, user_id, goal_type, title, target_amount, current_amount, deadline, category, currency"

func scanGoal(row interface{ Scan(...any) error }) (core.Goal, error) {
	var g core.Goal
	err := row.Scan(&g.ID, &g.UserID, &g.Type, &g.Title, &g.TargetAmount, &g.CurrentAmount, &g.Deadline, &g.Category, &g.Currency)
	return g, err
}

func (r *GoalRepo) Load(userID string) ([]core.Goal, error) {
	rows, err := r.db.Query("SELECT "+goalColumns+" FROM goals WHERE user_id = ? ORDER BY rowid", userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var goals []core.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// Add inserts the goal, generating an id and stamping the owning user and
// default currency when absent. Returns the stored goal.
func (r *GoalRepo) Add(userID string, g core.Goal) (core.Goal, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.UserID == "" {
		g.UserID = userID
	}
	if g.Currency == "" {
		g.Currency = core.DefaultCurrency
	}

	_, err := r.db.Exec(
		"INSERT INTO goals ("+goalColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		g.ID, g.UserID, g.Type, g.Title, g.TargetAmount, g.CurrentAmount, g.Deadline, g.Category, g.Currency,
	)
	if err != nil {
		return core.Goal{}, fmt.Errorf("insert goal: %w", err)
	}
	return g, nil
}

func (r *GoalRepo) Get(userID, goalID string) (core.Goal, error) {
	row := r.db.QueryRow("SELECT "+goalColumns+" FROM goals WHERE user_id = ? AND id = ?", userID, goalID)
	g, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Goal{}, store.ErrNotFound
	}
	if err != nil {
		return core.Goal{}, fmt.Errorf("get goal: %w", err)
	}
	return g, nil
}

func (r *GoalRepo) Update(userID string, updated core.Goal) error {
	res, err := r.db.Exec(
		"UPDATE goals SET goal_type = ?, title = ?, target_amount = ?, current_amount = ?, deadline = ?, category = ?, currency = ? WHERE user_id = ? AND id = ?",
		updated.Type, updated.Title, updated.TargetAmount, updated.CurrentAmount, updated.Deadline, updated.Category, updated.Currency, userID, updated.ID,
	)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *GoalRepo) Delete(userID, goalID string) error {
	res, err := r.db.Exec("DELETE FROM goals WHERE user_id = ? AND id = ?", userID, goalID)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
