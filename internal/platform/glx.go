package platform

// GLX attribute tokens shared by drivers and the context negotiation code.
const (
	AttribNone = 0

	ContextMajorVersionARB = 0x2091
	ContextMinorVersionARB = 0x2092
	ContextFlagsARB        = 0x2094
	ContextProfileMaskARB  = 0x9126

	ContextDebugBitARB             = 0x0001
	ContextForwardCompatibleBitARB = 0x0002
	ContextCoreProfileBitARB       = 0x0001
	ContextCompatProfileBitARB     = 0x0002

	SwapIntervalEXT = 0x20F1
)

// Entry point names resolved through Display.GetProcAddress.
const (
	ProcCreateContextAttribsARB = "glXCreateContextAttribsARB"
	ProcSwapIntervalEXT         = "glXSwapIntervalEXT"
	ProcSwapIntervalMESA        = "glXSwapIntervalMESA"
	ProcSwapIntervalSGI         = "glXSwapIntervalSGI"
)

// Extension names advertised in the GLX extension string.
const (
	ExtCreateContext     = "GLX_ARB_create_context"
	ExtCreateContextProf = "GLX_ARB_create_context_profile"
	ExtSwapControlEXT    = "GLX_EXT_swap_control"
	ExtSwapControlMESA   = "GLX_MESA_swap_control"
	ExtSwapControlSGI    = "GLX_SGI_swap_control"
)
