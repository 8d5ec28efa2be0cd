package postgres

import (
	"context"
	"database/sql"
	"errors"

	"boothq/internal/models"
	"boothq/internal/store"

	"github.com/jackc/pgx/v5"
)

func (s *Store) CreateStudent(ctx context.Context, student models.Student) (models.Student, error) {
	var exists bool
	row := s.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM students WHERE student_id = $1)
	`, student.StudentID)
	if err := row.Scan(&exists); err != nil {
		return models.Student{}, err
	}
	if exists {
		return models.Student{}, store.ErrDuplicateLoginID
	}

	row = s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM students
			WHERE school = $1 AND grade = $2 AND class = $3 AND number = $4
		)
	`, student.Identity.School, student.Identity.Grade, student.Identity.Class, student.Identity.Number)
	if err := row.Scan(&exists); err != nil {
		return models.Student{}, err
	}
	if exists {
		return models.Student{}, store.ErrDuplicateIdentity
	}

	row = s.pool.QueryRow(ctx, `
		INSERT INTO students (student_id, password, school, grade, class, number, name, phone, email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`, student.StudentID, student.Password,
		student.Identity.School, student.Identity.Grade, student.Identity.Class,
		student.Identity.Number, student.Identity.Name, student.Phone, student.Email)
	if err := row.Scan(&student.ID, &student.CreatedAt); err != nil {
		return models.Student{}, err
	}
	return student, nil
}

func (s *Store) GetStudentByLogin(ctx context.Context, studentID, password string) (models.Student, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, student_id, password, school, grade, class, number, name, phone, email, created_at
		FROM students
		WHERE student_id = $1 AND password = $2
	`, studentID, password)
	student, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Student{}, store.ErrInvalidCredentials
		}
		return models.Student{}, err
	}
	return student, nil
}

func (s *Store) GetStudent(ctx context.Context, id int64) (models.Student, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, student_id, password, school, grade, class, number, name, phone, email, created_at
		FROM students
		WHERE id = $1
	`, id)
	student, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Student{}, store.ErrStudentNotFound
		}
		return models.Student{}, err
	}
	return student, nil
}

func (s *Store) StudentIDTaken(ctx context.Context, studentID string) (bool, error) {
	var taken bool
	row := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM students WHERE student_id = $1)`, studentID)
	if err := row.Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}

func (s *Store) ListStudents(ctx context.Context) ([]models.Student, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, student_id, password, school, grade, class, number, name, phone, email, created_at
		FROM students
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return students, nil
}

func (s *Store) UpdateStudent(ctx context.Context, student models.Student) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE students
		SET student_id = $1, password = $2, school = $3, grade = $4, class = $5,
			number = $6, name = $7, phone = $8, email = $9
		WHERE id = $10
	`, student.StudentID, student.Password,
		student.Identity.School, student.Identity.Grade, student.Identity.Class,
		student.Identity.Number, student.Identity.Name, student.Phone, student.Email, student.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrStudentNotFound
	}
	return nil
}

func (s *Store) DeleteStudent(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrStudentNotFound
	}
	return nil
}

func (s *Store) ClearStudents(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM students`)
	return err
}

func (s *Store) CreateOperator(ctx context.Context, operator models.Operator) (models.Operator, error) {
	var exists bool
	row := s.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM booth_operators WHERE operator_id = $1)
	`, operator.OperatorID)
	if err := row.Scan(&exists); err != nil {
		return models.Operator{}, err
	}
	if exists {
		return models.Operator{}, store.ErrDuplicateLoginID
	}

	row = s.pool.QueryRow(ctx, `
		INSERT INTO booth_operators (operator_id, password, school, club_name, booth_topic, name, phone, email, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`, operator.OperatorID, operator.Password, operator.School, operator.ClubName,
		operator.BoothTopic, operator.Name, operator.Phone, operator.Email, operator.Active)
	if err := row.Scan(&operator.ID, &operator.CreatedAt); err != nil {
		return models.Operator{}, err
	}
	return operator, nil
}

func (s *Store) GetOperatorByLogin(ctx context.Context, operatorID, password string) (models.Operator, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, operator_id, password, school, club_name, booth_topic, name, phone, email, active, created_at
		FROM booth_operators
		WHERE operator_id = $1 AND password = $2 AND active = TRUE
	`, operatorID, password)
	operator, err := scanOperator(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Operator{}, store.ErrInvalidCredentials
		}
		return models.Operator{}, err
	}
	return operator, nil
}

func (s *Store) OperatorIDTaken(ctx context.Context, operatorID string) (bool, error) {
	var taken bool
	row := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM booth_operators WHERE operator_id = $1)`, operatorID)
	if err := row.Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}

func (s *Store) ListOperators(ctx context.Context) ([]models.Operator, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, operator_id, password, school, club_name, booth_topic, name, phone, email, active, created_at
		FROM booth_operators
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var operators []models.Operator
	for rows.Next() {
		operator, err := scanOperator(rows)
		if err != nil {
			return nil, err
		}
		operators = append(operators, operator)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return operators, nil
}

func (s *Store) UpdateOperator(ctx context.Context, operator models.Operator) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE booth_operators
		SET operator_id = $1, password = $2, school = $3, club_name = $4,
			booth_topic = $5, name = $6, phone = $7, email = $8
		WHERE id = $9
	`, operator.OperatorID, operator.Password, operator.School, operator.ClubName,
		operator.BoothTopic, operator.Name, operator.Phone, operator.Email, operator.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrOperatorNotFound
	}
	return nil
}

func (s *Store) SetOperatorActive(ctx context.Context, id int64, active bool) error {
	tag, err := s.pool.Exec(ctx, `UPDATE booth_operators SET active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrOperatorNotFound
	}
	return nil
}

func (s *Store) DeleteOperator(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM booth_operators WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrOperatorNotFound
	}
	return nil
}

func (s *Store) ClearOperators(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM booth_operators`)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row rowScanner) (models.Student, error) {
	var student models.Student
	var phone, email sql.NullString
	err := row.Scan(&student.ID, &student.StudentID, &student.Password,
		&student.Identity.School, &student.Identity.Grade, &student.Identity.Class,
		&student.Identity.Number, &student.Identity.Name, &phone, &email, &student.CreatedAt)
	if err != nil {
		return models.Student{}, err
	}
	student.Phone = nullString(phone)
	student.Email = nullString(email)
	return student, nil
}

func scanOperator(row rowScanner) (models.Operator, error) {
	var operator models.Operator
	var phone, email sql.NullString
	err := row.Scan(&operator.ID, &operator.OperatorID, &operator.Password,
		&operator.School, &operator.ClubName, &operator.BoothTopic, &operator.Name,
		&phone, &email, &operator.Active, &operator.CreatedAt)
	if err != nil {
		return models.Operator{}, err
	}
	operator.Phone = nullString(phone)
	operator.Email = nullString(email)
	return operator, nil
}
