package store

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// Config ...
type Config struct {
	DatabaseURL string `toml:"database_url"`
}

// NewConfig return new initialized struct
func NewConfig() *Config {
	return &Config{}
}

// Store is the relational user/group registry.
type Store struct {
	config *Config
	db     *sql.DB
}

// New ...
func New(config *Config) *Store {
	return &Store{
		config: config,
	}
}

// Open database with config data and prepare the schema
func (s *Store) Open() error {
	db, err := sql.Open("postgres", s.config.DatabaseURL)
	if err != nil {
		return err
	}
	if err := db.Ping(); err != nil {
		return err
	}
	s.db = db
	return s.createTables()
}

// Close DB connection
func (s *Store) Close() {
	s.db.Close()
}

func (s *Store) createTables() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id BIGINT PRIMARY KEY,
			role VARCHAR(10) CHECK ( role IN ('student', 'teacher') ) DEFAULT NULL,
			register_date DATE DEFAULT CURRENT_DATE NOT NULL,
			notify_enabled BOOLEAN DEFAULT TRUE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS faculty (
			faculty_id SERIAL PRIMARY KEY,
			faculty_name TEXT UNIQUE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS groups (
			group_id SERIAL PRIMARY KEY,
			group_name VARCHAR(5) UNIQUE NOT NULL,
			start_date DATE,
			course INTEGER CHECK ( course BETWEEN 1 AND 4 ),
			faculty_id INTEGER NOT NULL REFERENCES faculty(faculty_id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS students (
			user_id BIGINT PRIMARY KEY REFERENCES users(user_id) ON DELETE CASCADE,
			group_id INTEGER NOT NULL REFERENCES groups(group_id) ON DELETE CASCADE,
			subgroup INTEGER CHECK ( subgroup IN (1, 2) ),
			first_name TEXT,
			last_name TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS teachers (
			user_id BIGINT PRIMARY KEY REFERENCES users(user_id) ON DELETE CASCADE,
			first_name TEXT,
			last_name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS admins (
			user_id BIGINT PRIMARY KEY REFERENCES users(user_id) ON DELETE CASCADE,
			control_admins BOOLEAN DEFAULT FALSE NOT NULL,
			manage_groups BOOLEAN DEFAULT FALSE NOT NULL,
			update_rights BOOLEAN DEFAULT FALSE NOT NULL,
			update_changes BOOLEAN DEFAULT TRUE NOT NULL,
			global_messages BOOLEAN DEFAULT FALSE NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return s.seedFaculties()
}

// seedFaculties fills the faculty table with the college's departments
// when it is empty.
func (s *Store) seedFaculties() error {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM faculty;").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, name := range []string{"Радиотехническое", "Машиностроительное", "Юридическое"} {
		if _, err := s.db.Exec("INSERT INTO faculty (faculty_name) VALUES ($1);", name); err != nil {
			return err
		}
	}
	return nil
}

// CreateUser creates or updates the base users record
func (s *Store) CreateUser(userID int64, role string) error {
	_, err := s.db.Exec(
		"INSERT INTO users (user_id, role) VALUES ($1, $2) ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role;",
		userID, role)
	return err
}

// UserExists Check if the user is registered by his id
func (s *Store) UserExists(userID int64) (bool, error) {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM users WHERE user_id = $1;", userID).Scan(&one)
	if err != nil {
		if err != sql.ErrNoRows {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

// UserRole returns the user's role, empty string for unknown users.
func (s *Store) UserRole(userID int64) (string, error) {
	var role sql.NullString
	err := s.db.QueryRow("SELECT role FROM users WHERE user_id = $1;", userID).Scan(&role)
	if err != nil {
		if err != sql.ErrNoRows {
			return "", err
		}
		return "", nil
	}
	return role.String, nil
}

// DeleteUser removes the user; students/teachers/admins rows follow by
// cascade. Reports whether anything was deleted.
func (s *Store) DeleteUser(userID int64) (bool, error) {
	result, err := s.db.Exec("DELETE FROM users WHERE user_id = $1;", userID)
	if err != nil {
		return false, err
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}

// SaveStudent stores the student's data. Zero subgroup and empty names
// are stored as NULL.
func (s *Store) SaveStudent(userID int64, groupID int, subgroup int, firstName, lastName string) error {
	_, err := s.db.Exec(
		`INSERT INTO students (user_id, group_id, subgroup, first_name, last_name)
		 VALUES ($1, $2, NULLIF($3, 0), NULLIF($4, ''), NULLIF($5, ''))
		 ON CONFLICT (user_id) DO UPDATE SET
			group_id = EXCLUDED.group_id,
			subgroup = EXCLUDED.subgroup,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name;`,
		userID, groupID, subgroup, firstName, lastName)
	return err
}

// SaveTeacher stores the teacher's data.
func (s *Store) SaveTeacher(userID int64, firstName, lastName string) error {
	_, err := s.db.Exec(
		`INSERT INTO teachers (user_id, first_name, last_name)
		 VALUES ($1, NULLIF($2, ''), $3)
		 ON CONFLICT (user_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name;`,
		userID, firstName, lastName)
	return err
}

// Group is one row of the group directory.
type Group struct {
	ID      int
	Faculty string
	Name    string
}

// Groups returns the group directory ordered by faculty then name.
func (s *Store) Groups() ([]Group, error) {
	rows, err := s.db.Query(
		`SELECT g.group_id, f.faculty_name, g.group_name
		 FROM groups g
		 JOIN faculty f USING(faculty_id)
		 ORDER BY f.faculty_name, g.group_name;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []Group
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.ID, &g.Faculty, &g.Name); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// StudentGroup returns the group name the student registered with,
// empty string for unknown students.
func (s *Store) StudentGroup(userID int64) (string, error) {
	var group string
	err := s.db.QueryRow(
		`SELECT g.group_name FROM students s
		 JOIN groups g USING(group_id)
		 WHERE s.user_id = $1;`, userID).Scan(&group)
	if err != nil {
		if err != sql.ErrNoRows {
			return "", err
		}
		return "", nil
	}
	return group, nil
}

// TeacherLastName returns the last name the teacher registered with,
// empty string for unknown teachers.
func (s *Store) TeacherLastName(userID int64) (string, error) {
	var lastName string
	err := s.db.QueryRow("SELECT last_name FROM teachers WHERE user_id = $1;", userID).Scan(&lastName)
	if err != nil {
		if err != sql.ErrNoRows {
			return "", err
		}
		return "", nil
	}
	return lastName, nil
}
