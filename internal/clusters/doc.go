// Package clusters partitions an aligned parallel corpus into per-cluster
// subcorpora and reassembles them in cluster order.
//
// File names follow the pipeline convention: the pair {base}.{lang} is split
// into {base}_cluster{i}.{lang}, and Concat writes {base}_clusterorder.{lang}
// holding cluster 0, then cluster 1, and so on. The cluster-order source is
// what the reorder package receives as a scrambled corpus.
package clusters
