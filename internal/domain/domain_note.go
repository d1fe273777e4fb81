// Package domain 定义领域模型和接口
package domain

import "time"

// TitleMaxLength 标题最大长度（按字符计）
const TitleMaxLength = 200

// Note 笔记领域模型
type Note struct {
	ID        string
	Title     string
	Content   *string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoteDraft 创建或整体替换笔记时的输入
type NoteDraft struct {
	Title   string
	Content *string
	Tags    []string
}

// NotePatch 局部更新笔记时的输入，nil 字段保持原值
type NotePatch struct {
	Title   *string
	Content *string
	Tags    *[]string
}

// NotePage 分页查询结果，Total 为分页前的匹配数量
type NotePage struct {
	Total int
	Items []*Note
}

// Clone 深拷贝笔记，调用方拿到的值不会与存储内部状态共享内存
func (n *Note) Clone() *Note {
	if n == nil {
		return nil
	}
	c := *n
	c.Content = CloneString(n.Content)
	c.Tags = CloneTags(n.Tags)
	return &c
}

// Apply 将 patch 中已设置的字段应用到笔记副本上
func (n *Note) Apply(p NotePatch) *Note {
	c := n.Clone()
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Content != nil {
		c.Content = CloneString(p.Content)
	}
	if p.Tags != nil {
		c.Tags = CloneTags(*p.Tags)
	}
	return c
}

// Matches 判断标题或内容是否包含已转小写的关键字
func (n *Note) Matches(lowerQuery string) bool {
	if lowerQuery == "" {
		return true
	}
	if containsFold(n.Title, lowerQuery) {
		return true
	}
	return n.Content != nil && containsFold(*n.Content, lowerQuery)
}

// TouchTime 返回下一次更新时间，时钟回拨时不早于上一次更新时间
func TouchTime(prev time.Time, now time.Time) time.Time {
	if now.Before(prev) {
		return prev
	}
	return now
}

// CloneString 复制字符串指针指向的值，nil 保持为 nil
func CloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// CloneTags 复制标签切片，nil 复制为空切片
func CloneTags(tags []string) []string {
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
