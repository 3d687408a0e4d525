package core

// Table 表格化数据载体
// 所有行情接口返回的数据统一投影为"列名 + 字符串行"的形式，
// 由调用方按需做进一步的类型转换
type Table struct {
	Columns []string   `json:"columns"` // 列名列表
	Rows    [][]string `json:"rows"`    // 数据行，每行与 Columns 等长
}

// NewTable 创建只有列名的空表
func NewTable(columns ...string) Table {
	return Table{Columns: columns, Rows: [][]string{}}
}

// Len 返回数据行数
func (t Table) Len() int {
	return len(t.Rows)
}

// Empty 判断表是否没有任何数据行
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// AppendRow 追加一行数据
func (t *Table) AppendRow(row []string) {
	t.Rows = append(t.Rows, row)
}

// InsertColumn 在指定位置插入一列，所有行填充同一个值
// 用于给整表补上股票代码、股票名称这类常量列
func (t *Table) InsertColumn(pos int, name string, value string) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(t.Columns) {
		pos = len(t.Columns)
	}

	t.Columns = append(t.Columns, "")
	copy(t.Columns[pos+1:], t.Columns[pos:])
	t.Columns[pos] = name

	for i, row := range t.Rows {
		row = append(row, "")
		copy(row[pos+1:], row[pos:])
		row[pos] = value
		t.Rows[i] = row
	}
}
