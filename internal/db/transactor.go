package db

import "database/sql"

func NewTransactor(db *sql.DB, txFunc func(*sql.Tx) error) (err error) {
	tx, err := db.Begin()

	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}

		if err != nil {
			tx.Rollback()
			return
		}

		err = tx.Commit()
	}()

	return txFunc(tx)
}
