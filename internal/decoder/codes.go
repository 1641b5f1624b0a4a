package decoder

// RepeatCode is sent by NEC remotes while a button is held down.
const RepeatCode uint32 = 0xFFFFFFFF

// maxStaticCode is the largest code the built-in layouts can produce.
const maxStaticCode uint32 = 0xFFFFFF

// ir24OldThreshold separates the old white 24-key remote (0xFFxxxx) from the
// current one (0xF7xxxx) in the IR24 family.
const ir24OldThreshold uint32 = 0xF80000

// 24-key remote
const (
	IR24Brighter  uint32 = 0xF700FF
	IR24Darker    uint32 = 0xF7807F
	IR24Off       uint32 = 0xF740BF
	IR24On        uint32 = 0xF7C03F
	IR24Red       uint32 = 0xF720DF
	IR24Reddish   uint32 = 0xF710EF
	IR24Orange    uint32 = 0xF730CF
	IR24Yellowish uint32 = 0xF708F7
	IR24Yellow    uint32 = 0xF728D7
	IR24Green     uint32 = 0xF7A05F
	IR24Greenish  uint32 = 0xF7906F
	IR24Turquoise uint32 = 0xF7B04F
	IR24Cyan      uint32 = 0xF78877
	IR24Aqua      uint32 = 0xF7A857
	IR24Blue      uint32 = 0xF7609F
	IR24DeepBlue  uint32 = 0xF750AF
	IR24Purple    uint32 = 0xF7708F
	IR24Magenta   uint32 = 0xF748B7
	IR24Pink      uint32 = 0xF76897
	IR24White     uint32 = 0xF7E01F
	IR24Flash     uint32 = 0xF7D02F
	IR24Strobe    uint32 = 0xF7F00F
	IR24Fade      uint32 = 0xF7C837
	IR24Smooth    uint32 = 0xF7E817
)

// old white 24-key remote
const (
	IR24OldBrighter  uint32 = 0xFF906F
	IR24OldDarker    uint32 = 0xFFB847
	IR24OldOff       uint32 = 0xFFF807
	IR24OldOn        uint32 = 0xFFB04F
	IR24OldRed       uint32 = 0xFF9867
	IR24OldReddish   uint32 = 0xFFE817
	IR24OldOrange    uint32 = 0xFF02FD
	IR24OldYellowish uint32 = 0xFF50AF
	IR24OldYellow    uint32 = 0xFF38C7
	IR24OldGreen     uint32 = 0xFFD827
	IR24OldGreenish  uint32 = 0xFF48B7
	IR24OldTurquoise uint32 = 0xFF32CD
	IR24OldCyan      uint32 = 0xFF7887
	IR24OldAqua      uint32 = 0xFF28D7
	IR24OldBlue      uint32 = 0xFF8877
	IR24OldDeepBlue  uint32 = 0xFF6897
	IR24OldPurple    uint32 = 0xFF20DF
	IR24OldMagenta   uint32 = 0xFF00FF
	IR24OldPink      uint32 = 0xFF58A7
	IR24OldWhite     uint32 = 0xFFA857
	IR24OldFlash     uint32 = 0xFFB24D
	IR24OldStrobe    uint32 = 0xFF708F
	IR24OldFade      uint32 = 0xFF08F7
	IR24OldSmooth    uint32 = 0xFF30CF
)

// 24-key remote with CW, WW, CT+ and CT- keys
const (
	IR24CTBrighter  uint32 = 0xF700FF
	IR24CTDarker    uint32 = 0xF7807F
	IR24CTOff       uint32 = 0xF740BF
	IR24CTOn        uint32 = 0xF7C03F
	IR24CTRed       uint32 = 0xF720DF
	IR24CTReddish   uint32 = 0xF710EF
	IR24CTOrange    uint32 = 0xF730CF
	IR24CTYellowish uint32 = 0xF708F7
	IR24CTYellow    uint32 = 0xF728D7
	IR24CTGreen     uint32 = 0xF7A05F
	IR24CTGreenish  uint32 = 0xF7906F
	IR24CTTurquoise uint32 = 0xF7B04F
	IR24CTCyan      uint32 = 0xF78877
	IR24CTAqua      uint32 = 0xF7A857
	IR24CTBlue      uint32 = 0xF7609F
	IR24CTDeepBlue  uint32 = 0xF750AF
	IR24CTPurple    uint32 = 0xF7708F
	IR24CTMagenta   uint32 = 0xF748B7
	IR24CTPink      uint32 = 0xF76897
	IR24CTColdWhite uint32 = 0xF7E01F
	IR24CTWarmWhite uint32 = 0xF7D02F
	IR24CTCTPlus    uint32 = 0xF7F00F
	IR24CTCTMinus   uint32 = 0xF7C837
	IR24CTMemory    uint32 = 0xF7E817
)

// blue 40-key remote with 25%, 50%, 75% and 100% keys
const (
	IR40BPlus      uint32 = 0xFF3AC5
	IR40BMinus     uint32 = 0xFFBA45
	IR40Off        uint32 = 0xFF827D
	IR40On         uint32 = 0xFF02FD
	IR40Red        uint32 = 0xFF1AE5
	IR40Reddish    uint32 = 0xFF2AD5
	IR40Orange     uint32 = 0xFF0AF5
	IR40Yellowish  uint32 = 0xFF38C7
	IR40Yellow     uint32 = 0xFF18E7
	IR40Green      uint32 = 0xFF9A65
	IR40Greenish   uint32 = 0xFFAA55
	IR40Turquoise  uint32 = 0xFF8A75
	IR40Cyan       uint32 = 0xFFB847
	IR40Aqua       uint32 = 0xFF9867
	IR40Blue       uint32 = 0xFFA25D
	IR40DeepBlue   uint32 = 0xFF926D
	IR40Purple     uint32 = 0xFFB24D
	IR40Magenta    uint32 = 0xFF7887
	IR40Pink       uint32 = 0xFF58A7
	IR40White      uint32 = 0xFF22DD
	IR40WarmWhite2 uint32 = 0xFF12ED
	IR40WarmWhite  uint32 = 0xFF32CD
	IR40ColdWhite  uint32 = 0xFFF807
	IR40ColdWhite2 uint32 = 0xFFD827
	IR40WPlus      uint32 = 0xFF28D7
	IR40WMinus     uint32 = 0xFF08F7
	IR40WOff       uint32 = 0xFFA857
	IR40WOn        uint32 = 0xFF8877
	IR40W25        uint32 = 0xFF6897
	IR40W50        uint32 = 0xFF48B7
	IR40W75        uint32 = 0xFFE817
	IR40W100       uint32 = 0xFFC837
	IR40Quick      uint32 = 0xFF30CF
	IR40Slow       uint32 = 0xFF10EF
	IR40Jump7      uint32 = 0xFFB04F
	IR40Auto       uint32 = 0xFF906F
	IR40Jump3      uint32 = 0xFF708F
	IR40Fade3      uint32 = 0xFF50AF
	IR40Fade7      uint32 = 0xFFF00F
	IR40Flash      uint32 = 0xFFD02F
)

// white 44-key remote with color up/down and DIY1 to DIY6 keys
const (
	IR44BPlus      uint32 = 0xFF3AC5
	IR44BMinus     uint32 = 0xFFBA45
	IR44Off        uint32 = 0xFF827D
	IR44On         uint32 = 0xFF02FD
	IR44Red        uint32 = 0xFF1AE5
	IR44Green      uint32 = 0xFF9A65
	IR44Blue       uint32 = 0xFFA25D
	IR44White      uint32 = 0xFF22DD
	IR44Reddish    uint32 = 0xFF2AD5
	IR44Greenish   uint32 = 0xFFAA55
	IR44DeepBlue   uint32 = 0xFF926D
	IR44WarmWhite2 uint32 = 0xFF12ED
	IR44Orange     uint32 = 0xFF0AF5
	IR44Turquoise  uint32 = 0xFF8A75
	IR44Purple     uint32 = 0xFFB24D
	IR44WarmWhite  uint32 = 0xFF32CD
	IR44Yellowish  uint32 = 0xFF38C7
	IR44Cyan       uint32 = 0xFFB847
	IR44Magenta    uint32 = 0xFF7887
	IR44ColdWhite  uint32 = 0xFFF807
	IR44Yellow     uint32 = 0xFF18E7
	IR44Aqua       uint32 = 0xFF9867
	IR44Pink       uint32 = 0xFF58A7
	IR44ColdWhite2 uint32 = 0xFFD827
	IR44RedPlus    uint32 = 0xFF28D7
	IR44GreenPlus  uint32 = 0xFFA857
	IR44BluePlus   uint32 = 0xFF6897
	IR44Quick      uint32 = 0xFFE817
	IR44RedMinus   uint32 = 0xFF08F7
	IR44GreenMinus uint32 = 0xFF8877
	IR44BlueMinus  uint32 = 0xFF48B7
	IR44Slow       uint32 = 0xFFC837
	IR44DIY1       uint32 = 0xFF30CF
	IR44DIY2       uint32 = 0xFFB04F
	IR44DIY3       uint32 = 0xFF708F
	IR44Auto       uint32 = 0xFFF00F
	IR44DIY4       uint32 = 0xFF10EF
	IR44DIY5       uint32 = 0xFF906F
	IR44DIY6       uint32 = 0xFF50AF
	IR44Flash      uint32 = 0xFFD02F
	IR44Jump3      uint32 = 0xFF20DF
	IR44Jump7      uint32 = 0xFFA05F
	IR44Fade3      uint32 = 0xFF609F
	IR44Fade7      uint32 = 0xFFE01F
)

// white 21-key remote
const (
	IR21Brighter  uint32 = 0xFFE01F
	IR21Darker    uint32 = 0xFFA857
	IR21Off       uint32 = 0xFF629D
	IR21On        uint32 = 0xFFE21D
	IR21Red       uint32 = 0xFF22DD
	IR21Reddish   uint32 = 0xFF02FD
	IR21Orange    uint32 = 0xFFC23D
	IR21Yellowish uint32 = 0xFF906F
	IR21Green     uint32 = 0xFF6897
	IR21Greenish  uint32 = 0xFF9867
	IR21Turquoise uint32 = 0xFFB04F
	IR21Cyan      uint32 = 0xFF30CF
	IR21Blue      uint32 = 0xFF18E7
	IR21DeepBlue  uint32 = 0xFF7A85
	IR21Purple    uint32 = 0xFF10EF
	IR21Pink      uint32 = 0xFF38C7
	IR21White     uint32 = 0xFF5AA5
	IR21Flash     uint32 = 0xFF42BD
	IR21Strobe    uint32 = 0xFF4AB5
	IR21Fade      uint32 = 0xFF52AD
	IR21Smooth    uint32 = 0xFFA25D
)

// black 6-key learning remote
const (
	IR6Power       uint32 = 0xFF0FF0
	IR6ChannelUp   uint32 = 0xFF8F70
	IR6ChannelDown uint32 = 0xFF4FB0
	IR6VolumeUp    uint32 = 0xFFCF30
	IR6VolumeDown  uint32 = 0xFF2FD0
	IR6Mute        uint32 = 0xFFAF50
)

// 9-key remote
const (
	IR9Power  uint32 = 0xFF629D
	IR9A      uint32 = 0xFF22DD
	IR9B      uint32 = 0xFF02FD
	IR9C      uint32 = 0xFFC23D
	IR9Left   uint32 = 0xFF30CF
	IR9Right  uint32 = 0xFF7A85
	IR9Up     uint32 = 0xFF9867
	IR9Down   uint32 = 0xFF38C7
	IR9Select uint32 = 0xFF18E7
)
