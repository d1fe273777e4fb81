package model

import "github.com/haierkeys/note-keeper-service/pkg/timex"

const TableNameNote = "note"

// Note mapped from table <note>
type Note struct {
	ID        string     `gorm:"column:id;type:varchar(36);primaryKey" json:"id" form:"id"`
	Seq       int64      `gorm:"column:seq;not null;index:idx_note_seq" json:"-" form:"-"`
	Title     string     `gorm:"column:title;type:varchar(200);not null" json:"title" form:"title"`
	Content   *string    `gorm:"column:content;type:text" json:"content" form:"content"`
	Tags      []string   `gorm:"column:tags;type:text;serializer:json" json:"tags" form:"tags"`
	CreatedAt timex.Time `gorm:"column:created_at;not null;precision:6;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;not null;precision:6;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Note's table name
func (*Note) TableName() string {
	return TableNameNote
}
