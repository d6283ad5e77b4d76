package scoring

import "math"

// missingLengthScore is the fixed floor returned when no usable length is given.
const missingLengthScore = 50

// CatchScore computes the score for a single catch from the species stats and
// the measured length.
//
// The length is converted to a z-score against the species distribution, then
// to an approximate percentile (50 + 34.13*z, clamped to [0,100]), and the
// percentile is mapped through a non-linear weight curve. The final score is
// rarityScore + weight*sqrt(length), rounded, with a floor of 1.
func CatchScore(rarityScore int, avgLength, stdDeviation, length float64) int {
  if length <= 0 {
    return missingLengthScore
  }

  var percentile float64
  if stdDeviation <= 0 {
    // No spread known: treat longer-than-average as the 75th percentile,
    // shorter as the 25th.
    if length >= avgLength {
      percentile = 75
    } else {
      percentile = 25
    }
  } else {
    zScore := (length - avgLength) / stdDeviation
    percentile = 50 + 34.13*zScore
  }
  if percentile < 0 {
    percentile = 0
  }
  if percentile > 100 {
    percentile = 100
  }

  weight := lengthWeight(percentile)

  score := int(math.Round(float64(rarityScore) + weight*math.Sqrt(length)))
  if score < 1 {
    score = 1
  }
  return score
}

// lengthWeight maps a percentile to the non-linear score weight.
func lengthWeight(percentile float64) float64 {
  switch {
  case percentile >= 99:
    return 3.0
  case percentile >= 95:
    return 2.0 + (percentile-95)/4
  case percentile >= 90:
    return 1.5 + (percentile-90)/10
  case percentile >= 75:
    return 1.2 + (percentile-75)/50
  case percentile >= 50:
    return 1.0 + (percentile-50)/125
  default:
    return 0.3 + (percentile/50)*0.7
  }
}
