package appeals

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/davron-dev/murojaat-bot/internal/apperr"
)

var validate = validator.New()

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// Create записывает подтверждённую форму и возвращает номер обращения.
// Неполный черновик — ValidationError, в базу ничего не пишем.
func (r *Repo) Create(ctx context.Context, d Draft) (int64, error) {
	if err := validate.Struct(d); err != nil {
		return 0, apperr.NewValidationError("черновик неполон: %v", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO appeals (user_id, phone, full_name, address, domkom, text)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id
	`, d.UserID, d.Phone, d.FullName, d.Address, d.Domkom, d.Text)

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, apperr.NewStorageError("appeals.create", err)
	}
	return id, nil
}

// AddMedia дописывает медиафайл к обращению. Существование обращения
// не проверяется — порядок (сначала Create, потом AddMedia) на вызывающем.
func (r *Repo) AddMedia(ctx context.Context, appealID int64, path string, fileType FileType) error {
	if !fileType.Valid() {
		return apperr.NewValidationError("неизвестный тип файла %q", fileType)
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO media (appeal_id, file_path, file_type)
		VALUES ($1,$2,$3)
	`, appealID, path, fileType)
	if err != nil {
		return apperr.NewStorageError("appeals.add_media", err)
	}
	return nil
}

// ListByStatus — страница обращений, свежие первыми. Страницы с единицы;
// страница за пределами выборки даёт пустой срез.
func (r *Repo) ListByStatus(ctx context.Context, status Status, page, perPage int) ([]Appeal, error) {
	if !status.Valid() {
		return nil, apperr.NewValidationError("неизвестный статус %q", status)
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * perPage

	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, phone, full_name, address, domkom, text,
		       created_at, status, COALESCE(comment, '')
		FROM appeals
		WHERE status = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, status, perPage, offset)
	if err != nil {
		return nil, apperr.NewStorageError("appeals.list", err)
	}
	defer rows.Close()

	var out []Appeal
	for rows.Next() {
		var a Appeal
		if err := rows.Scan(&a.ID, &a.UserID, &a.Phone, &a.FullName, &a.Address,
			&a.Domkom, &a.Text, &a.CreatedAt, &a.Status, &a.Comment); err != nil {
			return nil, apperr.NewStorageError("appeals.list", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *Repo) CountPages(ctx context.Context, status Status, perPage int) (int, error) {
	if !status.Valid() {
		return 0, apperr.NewValidationError("неизвестный статус %q", status)
	}
	row := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM appeals WHERE status = $1`, status)
	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, apperr.NewStorageError("appeals.count", err)
	}
	return Pages(count, perPage), nil
}

// GetWithMedia возвращает обращение вместе со списком вложений
// в порядке добавления.
func (r *Repo) GetWithMedia(ctx context.Context, id int64) (*Appeal, []Media, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, phone, full_name, address, domkom, text,
		       created_at, status, COALESCE(comment, '')
		FROM appeals WHERE id = $1
	`, id)

	var a Appeal
	if err := row.Scan(&a.ID, &a.UserID, &a.Phone, &a.FullName, &a.Address,
		&a.Domkom, &a.Text, &a.CreatedAt, &a.Status, &a.Comment); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperr.ErrNotFound
		}
		return nil, nil, apperr.NewStorageError("appeals.get", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, appeal_id, file_path, file_type
		FROM media WHERE appeal_id = $1
		ORDER BY id
	`, id)
	if err != nil {
		return nil, nil, apperr.NewStorageError("appeals.get_media", err)
	}
	defer rows.Close()

	var media []Media
	for rows.Next() {
		var m Media
		if err := rows.Scan(&m.ID, &m.AppealID, &m.FilePath, &m.FileType); err != nil {
			return nil, nil, apperr.NewStorageError("appeals.get_media", err)
		}
		media = append(media, m)
	}
	return &a, media, rows.Err()
}

// MarkProcessed переводит обращение в processed. Пустой комментарий
// не затирает уже сохранённый.
func (r *Repo) MarkProcessed(ctx context.Context, id int64, comment string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE appeals
		SET status = 'processed',
		    comment = COALESCE(NULLIF($2, ''), comment)
		WHERE id = $1
	`, id, comment)
	if err != nil {
		return apperr.NewStorageError("appeals.mark_processed", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *Repo) CountUnprocessed(ctx context.Context) (int64, error) {
	row := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM appeals WHERE status = 'unprocessed'`)
	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, apperr.NewStorageError("appeals.count_unprocessed", err)
	}
	return count, nil
}

// ListAllWithMedia — все обращения с агрегатами по вложениям, для экспорта.
func (r *Repo) ListAllWithMedia(ctx context.Context) ([]ExportRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.user_id, a.phone, a.full_name, a.address, a.domkom, a.text,
		       a.created_at, a.status, COALESCE(a.comment, ''),
		       COUNT(m.id),
		       COALESCE(array_agg(DISTINCT m.file_type) FILTER (WHERE m.id IS NOT NULL), '{}')
		FROM appeals a
		LEFT JOIN media m ON m.appeal_id = a.id
		GROUP BY a.id
		ORDER BY a.created_at DESC, a.id DESC
	`)
	if err != nil {
		return nil, apperr.NewStorageError("appeals.export", err)
	}
	defer rows.Close()

	var out []ExportRow
	for rows.Next() {
		var er ExportRow
		var types []string
		if err := rows.Scan(&er.ID, &er.UserID, &er.Phone, &er.FullName, &er.Address,
			&er.Domkom, &er.Text, &er.CreatedAt, &er.Status, &er.Comment,
			&er.MediaCount, &types); err != nil {
			return nil, apperr.NewStorageError("appeals.export", err)
		}
		for _, t := range types {
			er.MediaTypes = append(er.MediaTypes, FileType(t))
		}
		out = append(out, er)
	}
	return out, rows.Err()
}

func (r *Repo) GetStats(ctx context.Context) (Stats, error) {
	s := Stats{MediaByType: map[FileType]int64{}}

	row := r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'processed')
		FROM appeals
	`)
	if err := row.Scan(&s.Total, &s.Processed); err != nil {
		return Stats{}, apperr.NewStorageError("appeals.stats", err)
	}
	s.Unprocessed = s.Total - s.Processed

	rows, err := r.pool.Query(ctx, `SELECT file_type, COUNT(*) FROM media GROUP BY file_type`)
	if err != nil {
		return Stats{}, apperr.NewStorageError("appeals.stats", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t FileType
		var n int64
		if err := rows.Scan(&t, &n); err != nil {
			return Stats{}, apperr.NewStorageError("appeals.stats", err)
		}
		s.MediaByType[t] = n
		s.TotalMedia += n
	}
	return s, rows.Err()
}
