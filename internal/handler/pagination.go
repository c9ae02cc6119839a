package handler

// Pagination is the zero-based page-number block rendered under a list.
// Pages are grouped into fixed-size blocks; the block containing the
// current page decides which numbers are shown.
type Pagination struct {
	Pages     []int
	StartPage int
	EndPage   int
}

func BuildPagination(currentPage, totalPages, blockSize int) Pagination {
	if blockSize < 1 {
		blockSize = 1
	}
	if totalPages < 1 {
		return Pagination{}
	}

	blockNumber := currentPage / blockSize
	startPage := blockNumber * blockSize
	endPage := (blockNumber+1)*blockSize - 1
	if endPage > totalPages-1 {
		endPage = totalPages - 1
	}

	pages := make([]int, 0, endPage-startPage+1)
	for page := startPage; page <= endPage; page++ {
		pages = append(pages, page)
	}
	return Pagination{Pages: pages, StartPage: startPage, EndPage: endPage}
}
