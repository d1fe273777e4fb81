package dao

import (
	"context"
	"sync"

	"github.com/haierkeys/note-keeper-service/internal/domain"
)

// KindMemory 内存存储名称
const KindMemory = "memory"

// memoryNoteRepository 进程内笔记存储
// notes 保存数据，order 保存插入顺序，二者由同一把读写锁保护
type memoryNoteRepository struct {
	mu    sync.RWMutex
	notes map[string]*domain.Note
	order []string
	opts  *options
}

// NewMemoryNoteRepository 创建内存笔记仓储
func NewMemoryNoteRepository(opts ...Option) domain.NoteRepository {
	return &memoryNoteRepository{
		notes: make(map[string]*domain.Note),
		opts:  applyOptions(opts),
	}
}

// Kind 返回存储实现名称
func (r *memoryNoteRepository) Kind() string {
	return KindMemory
}

// Create 创建笔记
func (r *memoryNoteRepository) Create(ctx context.Context, draft domain.NoteDraft) (*domain.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.opts.newID()
	for _, ok := r.notes[id]; ok; _, ok = r.notes[id] {
		id = r.opts.newID()
	}

	now := r.opts.now()
	n := &domain.Note{
		ID:        id,
		Title:     draft.Title,
		Content:   draft.Content,
		Tags:      draft.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	n = n.Clone()

	r.notes[id] = n
	r.order = append(r.order, id)
	return n.Clone(), nil
}

// Get 根据ID获取笔记，不存在时返回 nil
func (r *memoryNoteRepository) Get(ctx context.Context, id string) (*domain.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.notes[id].Clone(), nil
}

// List 按插入顺序过滤并分页
func (r *memoryNoteRepository) List(ctx context.Context, keyword string, limit, offset int) (*domain.NotePage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q := domain.NormalizeQuery(keyword)

	r.mu.RLock()
	defer r.mu.RUnlock()

	page := &domain.NotePage{Items: []*domain.Note{}}
	for _, id := range r.order {
		n := r.notes[id]
		if !n.Matches(q) {
			continue
		}
		if page.Total >= offset && len(page.Items) < limit {
			page.Items = append(page.Items, n.Clone())
		}
		page.Total++
	}
	return page, nil
}

// Replace 整体替换笔记内容
func (r *memoryNoteRepository) Replace(ctx context.Context, id string, draft domain.NoteDraft) (*domain.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.notes[id]
	if !ok {
		return nil, nil
	}

	n := &domain.Note{
		ID:        old.ID,
		Title:     draft.Title,
		Content:   draft.Content,
		Tags:      draft.Tags,
		CreatedAt: old.CreatedAt,
		UpdatedAt: domain.TouchTime(old.UpdatedAt, r.opts.now()),
	}
	n = n.Clone()
	r.notes[id] = n
	return n.Clone(), nil
}

// Update 局部更新笔记
func (r *memoryNoteRepository) Update(ctx context.Context, id string, patch domain.NotePatch) (*domain.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.notes[id]
	if !ok {
		return nil, nil
	}

	n := old.Apply(patch)
	n.UpdatedAt = domain.TouchTime(old.UpdatedAt, r.opts.now())
	r.notes[id] = n
	return n.Clone(), nil
}

// Delete 删除笔记，返回是否删除成功
func (r *memoryNoteRepository) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[id]; !ok {
		return false, nil
	}
	delete(r.notes, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// Count 获取笔记总数
func (r *memoryNoteRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.notes)), nil
}
