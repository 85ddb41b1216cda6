package trace

import (
	"path/filepath"
	"sort"

	"github.com/karrick/godirwalk"

	"github.com/nagacharan-tangirala/disolv/cmn/cos"
	"github.com/nagacharan-tangirala/disolv/cmn/fname"
)

// discoverShards walks dir (non-recursively, trace directories are flat)
// and returns the *.mpk shard paths in lexical order, which is also
// row-group order given the fname.TraceShardPattern's zero-padded index.
func discoverShards(dir string) ([]string, error) {
	var paths []string
	err := godirwalk.Walk(dir, &godirwalk.Options{
		Unsorted: true,
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				if path == dir {
					return nil
				}
				return filepath.SkipDir
			}
			if ok, _ := filepath.Match(fname.TraceShardGlob, filepath.Base(path)); ok {
				paths = append(paths, path)
			}
			return nil
		},
	})
	if err != nil {
		return nil, cos.NewTraceIOError(dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}
