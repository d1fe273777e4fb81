package dao

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/haierkeys/note-keeper-service/internal/domain"
	"github.com/haierkeys/note-keeper-service/internal/model"
	"github.com/haierkeys/note-keeper-service/pkg/timex"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KindDatabase 数据库存储名称
const KindDatabase = "database"

// noteRepository 实现基于 gorm 的 domain.NoteRepository
type noteRepository struct {
	db   *gorm.DB
	opts *options

	// seq 记录插入顺序，首次使用时从 MAX(seq) 装载
	seqMu     sync.Mutex
	seq       int64
	seqLoaded bool
}

// NewNoteRepository 创建数据库笔记仓储
func NewNoteRepository(db *gorm.DB, opts ...Option) domain.NoteRepository {
	return &noteRepository{db: db, opts: applyOptions(opts)}
}

// Kind 返回存储实现名称
func (r *noteRepository) Kind() string {
	return KindDatabase
}

// toDomain 将数据库模型转换为领域模型
func (r *noteRepository) toDomain(m *model.Note) *domain.Note {
	if m == nil {
		return nil
	}
	n := &domain.Note{
		ID:        m.ID,
		Title:     m.Title,
		Content:   m.Content,
		Tags:      m.Tags,
		CreatedAt: time.Time(m.CreatedAt).UTC(),
		UpdatedAt: time.Time(m.UpdatedAt).UTC(),
	}
	return n.Clone()
}

func (r *noteRepository) nextSeq(ctx context.Context) (int64, error) {
	r.seqMu.Lock()
	defer r.seqMu.Unlock()

	if !r.seqLoaded {
		var maxSeq int64
		err := r.db.WithContext(ctx).Model(&model.Note{}).Select("COALESCE(MAX(seq), 0)").Scan(&maxSeq).Error
		if err != nil {
			return 0, errors.Wrap(err, "load note seq failed")
		}
		r.seq = maxSeq
		r.seqLoaded = true
	}
	r.seq++
	return r.seq, nil
}

// write 执行写操作，配置了写队列时串行执行
func (r *noteRepository) write(ctx context.Context, fn func() error) error {
	if r.opts.writeQueue == nil {
		return fn()
	}
	return r.opts.writeQueue.Execute(ctx, model.TableNameNote, fn)
}

// Create 创建笔记
func (r *noteRepository) Create(ctx context.Context, draft domain.NoteDraft) (*domain.Note, error) {
	var m *model.Note

	err := r.write(ctx, func() error {
		seq, err := r.nextSeq(ctx)
		if err != nil {
			return err
		}

		now := timex.Time(r.opts.now())
		m = &model.Note{
			ID:        r.opts.newID(),
			Seq:       seq,
			Title:     draft.Title,
			Content:   domain.CloneString(draft.Content),
			Tags:      domain.CloneTags(draft.Tags),
			CreatedAt: now,
			UpdatedAt: now,
		}
		return errors.Wrap(r.db.WithContext(ctx).Create(m).Error, "create note failed")
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Get 根据ID获取笔记，不存在时返回 nil
func (r *noteRepository) Get(ctx context.Context, id string) (*domain.Note, error) {
	var m model.Note
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get note failed")
	}
	return r.toDomain(&m), nil
}

// List 按关键字过滤后分页，按插入顺序排列
func (r *noteRepository) List(ctx context.Context, keyword string, limit, offset int) (*domain.NotePage, error) {
	filter := keywordScope(domain.NormalizeQuery(keyword))

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Note{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "count notes failed")
	}

	page := &domain.NotePage{Total: int(total), Items: []*domain.Note{}}
	if limit <= 0 || int64(offset) >= total {
		return page, nil
	}
	if offset < 0 {
		offset = 0
	}

	var ms []*model.Note
	err := r.db.WithContext(ctx).
		Scopes(filter).
		Order("seq ASC").
		Offset(offset).
		Limit(limit).
		Find(&ms).Error
	if err != nil {
		return nil, errors.Wrap(err, "list notes failed")
	}

	for _, m := range ms {
		page.Items = append(page.Items, r.toDomain(m))
	}
	return page, nil
}

// Replace 整体替换笔记内容
func (r *noteRepository) Replace(ctx context.Context, id string, draft domain.NoteDraft) (*domain.Note, error) {
	return r.mutate(ctx, id, func(m *model.Note) {
		m.Title = draft.Title
		m.Content = draft.Content
		m.Tags = domain.CloneTags(draft.Tags)
	})
}

// Update 局部更新笔记
func (r *noteRepository) Update(ctx context.Context, id string, patch domain.NotePatch) (*domain.Note, error) {
	return r.mutate(ctx, id, func(m *model.Note) {
		if patch.Title != nil {
			m.Title = *patch.Title
		}
		if patch.Content != nil {
			v := *patch.Content
			m.Content = &v
		}
		if patch.Tags != nil {
			m.Tags = domain.CloneTags(*patch.Tags)
		}
	})
}

// mutate 在事务中读取、修改并写回笔记，笔记不存在时返回 nil
func (r *noteRepository) mutate(ctx context.Context, id string, fn func(m *model.Note)) (*domain.Note, error) {
	var (
		m     model.Note
		found bool
	)

	err := r.write(ctx, func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			q := tx
			if tx.Dialector.Name() != DriverSQLite {
				q = q.Clauses(clause.Locking{Strength: "UPDATE"})
			}
			if err := q.Where("id = ?", id).Take(&m).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil
				}
				return err
			}
			found = true

			fn(&m)
			m.UpdatedAt = timex.Time(domain.TouchTime(time.Time(m.UpdatedAt), r.opts.now()))

			return tx.Model(&m).
				Select("title", "content", "tags", "updated_at").
				Updates(&m).Error
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "update note failed")
	}
	if !found {
		return nil, nil
	}
	return r.toDomain(&m), nil
}

// Delete 删除笔记，返回是否删除成功
func (r *noteRepository) Delete(ctx context.Context, id string) (bool, error) {
	var affected int64
	err := r.write(ctx, func() error {
		res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Note{})
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return false, errors.Wrap(err, "delete note failed")
	}
	return affected > 0, nil
}

// Count 获取笔记总数
func (r *noteRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Note{}).Count(&total).Error; err != nil {
		return 0, errors.Wrap(err, "count notes failed")
	}
	return total, nil
}

// keywordScope 标题或内容包含关键字（不区分大小写）
func keywordScope(lowerQuery string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if lowerQuery == "" {
			return db
		}
		pattern := "%" + escapeLike(lowerQuery) + "%"
		return db.Where("LOWER(title) LIKE ? ESCAPE '!' OR LOWER(content) LIKE ? ESCAPE '!'", pattern, pattern)
	}
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// escapeLike 转义 LIKE 通配符，转义符为 '!'
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
