package service

import (
	"context"
	"time"

	"github.com/haierkeys/note-keeper-service/internal/domain"
	"github.com/haierkeys/note-keeper-service/internal/dto"
	"github.com/haierkeys/note-keeper-service/pkg/code"
	"github.com/haierkeys/note-keeper-service/pkg/convert"
	"github.com/haierkeys/note-keeper-service/pkg/logger"
	"github.com/haierkeys/note-keeper-service/pkg/timex"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// NoteService 定义笔记业务服务接口
// 找不到笔记时返回 code.ErrorNoteNotFound，存储失败返回 code.ErrorDBQuery
type NoteService interface {
	// Create 创建笔记
	Create(ctx context.Context, params *dto.NoteCreateRequest) (*dto.NoteDTO, error)

	// Get 获取单条笔记
	Get(ctx context.Context, id string) (*dto.NoteDTO, error)

	// List 获取笔记列表
	List(ctx context.Context, params *dto.NoteListRequest) (*dto.NotePageDTO, error)

	// Replace 整体替换笔记
	Replace(ctx context.Context, id string, params *dto.NoteReplaceRequest) (*dto.NoteDTO, error)

	// Update 局部更新笔记
	Update(ctx context.Context, id string, params *dto.NoteUpdateRequest) (*dto.NoteDTO, error)

	// Delete 删除笔记
	Delete(ctx context.Context, id string) error

	// Count 笔记总数
	Count(ctx context.Context) (int64, error)

	// StoreKind 当前使用的存储实现
	StoreKind() string
}

// noteService 实现 NoteService 接口
type noteService struct {
	noteRepo domain.NoteRepository
	sf       *singleflight.Group
	logger   *zap.Logger
	config   *ServiceConfig
}

// NewNoteService 创建 NoteService 实例
func NewNoteService(noteRepo domain.NoteRepository, lg *zap.Logger, config *ServiceConfig) NoteService {
	if lg == nil {
		lg = zap.NewNop()
	}
	if config == nil {
		config = &ServiceConfig{}
	}
	return &noteService{
		noteRepo: noteRepo,
		sf:       &singleflight.Group{},
		logger:   lg,
		config:   config,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *noteService) domainToDTO(note *domain.Note) *dto.NoteDTO {
	if note == nil {
		return nil
	}
	out := &dto.NoteDTO{}
	if err := convert.StructAssign(note, out); err != nil {
		c := note.Clone()
		out = &dto.NoteDTO{ID: c.ID, Title: c.Title, Content: c.Content, Tags: c.Tags}
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	out.CreatedAt = timex.Time(note.CreatedAt)
	out.UpdatedAt = timex.Time(note.UpdatedAt)
	return out
}

// storeError 记录存储错误并转换为业务错误码
func (s *noteService) storeError(method string, err error, fields ...zap.Field) error {
	fields = append(fields,
		zap.String(logger.FieldMethod, method),
		zap.String(logger.FieldStore, s.noteRepo.Kind()),
		zap.Error(err),
	)
	s.logger.Error("note store failed", fields...)
	return code.ErrorDBQuery
}

// observe 存储调用耗时超过阈值时记录警告
func (s *noteService) observe(method string, start time.Time) {
	if s.config.SlowThreshold <= 0 {
		return
	}
	if d := time.Since(start); d > s.config.SlowThreshold {
		s.logger.Warn("slow note store call",
			zap.String(logger.FieldMethod, method),
			zap.String(logger.FieldStore, s.noteRepo.Kind()),
			zap.Duration(logger.FieldDuration, d),
		)
	}
}

// Create 创建笔记
func (s *noteService) Create(ctx context.Context, params *dto.NoteCreateRequest) (*dto.NoteDTO, error) {
	defer s.observe("NoteService.Create", time.Now())

	note, err := s.noteRepo.Create(ctx, domain.NoteDraft{
		Title:   params.Title,
		Content: params.Content,
		Tags:    params.Tags,
	})
	if err != nil {
		return nil, s.storeError("NoteService.Create", err)
	}
	return s.domainToDTO(note), nil
}

// Get 获取单条笔记
func (s *noteService) Get(ctx context.Context, id string) (*dto.NoteDTO, error) {
	defer s.observe("NoteService.Get", time.Now())

	note, err := s.noteRepo.Get(ctx, id)
	if err != nil {
		return nil, s.storeError("NoteService.Get", err, zap.String(logger.FieldNoteID, id))
	}
	if note == nil {
		return nil, code.ErrorNoteNotFound
	}
	return s.domainToDTO(note), nil
}

// List 获取笔记列表
func (s *noteService) List(ctx context.Context, params *dto.NoteListRequest) (*dto.NotePageDTO, error) {
	defer s.observe("NoteService.List", time.Now())

	page, err := s.noteRepo.List(ctx, params.Q, params.Limit, params.Offset)
	if err != nil {
		return nil, s.storeError("NoteService.List", err, zap.String(logger.FieldQuery, params.Q))
	}

	out := &dto.NotePageDTO{Total: page.Total, Items: make([]*dto.NoteDTO, 0, len(page.Items))}
	for _, n := range page.Items {
		out.Items = append(out.Items, s.domainToDTO(n))
	}
	return out, nil
}

// Replace 整体替换笔记
func (s *noteService) Replace(ctx context.Context, id string, params *dto.NoteReplaceRequest) (*dto.NoteDTO, error) {
	defer s.observe("NoteService.Replace", time.Now())

	note, err := s.noteRepo.Replace(ctx, id, domain.NoteDraft{
		Title:   params.Title,
		Content: params.Content,
		Tags:    params.Tags,
	})
	if err != nil {
		return nil, s.storeError("NoteService.Replace", err, zap.String(logger.FieldNoteID, id))
	}
	if note == nil {
		return nil, code.ErrorNoteNotFound
	}
	return s.domainToDTO(note), nil
}

// Update 局部更新笔记
func (s *noteService) Update(ctx context.Context, id string, params *dto.NoteUpdateRequest) (*dto.NoteDTO, error) {
	defer s.observe("NoteService.Update", time.Now())

	note, err := s.noteRepo.Update(ctx, id, domain.NotePatch{
		Title:   params.Title,
		Content: params.Content,
		Tags:    params.Tags,
	})
	if err != nil {
		return nil, s.storeError("NoteService.Update", err, zap.String(logger.FieldNoteID, id))
	}
	if note == nil {
		return nil, code.ErrorNoteNotFound
	}

	s.logger.Debug("note updated",
		zap.String(logger.FieldNoteID, id),
		zap.Strings("fields", convert.SetFields(params)),
	)
	return s.domainToDTO(note), nil
}

// Delete 删除笔记
func (s *noteService) Delete(ctx context.Context, id string) error {
	defer s.observe("NoteService.Delete", time.Now())

	ok, err := s.noteRepo.Delete(ctx, id)
	if err != nil {
		return s.storeError("NoteService.Delete", err, zap.String(logger.FieldNoteID, id))
	}
	if !ok {
		return code.ErrorNoteNotFound
	}
	return nil
}

// Count 笔记总数，并发调用合并为一次存储调用
// 合并的调用不随任一调用方的 ctx 取消，每个调用方只按自己的 ctx 放弃等待
func (s *noteService) Count(ctx context.Context) (int64, error) {
	ch := s.sf.DoChan("note_count", func() (any, error) {
		return s.noteRepo.Count(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return 0, s.storeError("NoteService.Count", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return 0, s.storeError("NoteService.Count", res.Err)
		}
		return res.Val.(int64), nil
	}
}

// StoreKind 当前使用的存储实现
func (s *noteService) StoreKind() string {
	return s.noteRepo.Kind()
}
